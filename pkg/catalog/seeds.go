package catalog

import "github.com/umputun/newshub/pkg/domain"

// DefaultSelected lists seed feeds selected on first start
var DefaultSelected = []string{"lenta", "ria", "bbc", "rt"}

// DefaultSeeds returns the built-in feed list in catalog order
func DefaultSeeds() []domain.Feed {
	dom, intl, ra, rb := domain.CategoryDomestic, domain.CategoryInternational, domain.CategoryRegionalA, domain.CategoryRegionalB
	return []domain.Feed{
		{ID: "lenta", Name: "Лента.ру", URL: "https://lenta.ru/rss", Category: dom},
		{ID: "ria", Name: "РИА Новости", URL: "https://ria.ru/export/rss2/index.xml", Category: dom},
		{ID: "rt", Name: "RT", URL: "https://russian.rt.com/rss", Category: dom},
		{ID: "tass", Name: "ТАСС", URL: "https://tass.ru/rss/v2.xml", Category: dom},
		{ID: "kommersant", Name: "Коммерсантъ", URL: "https://www.kommersant.ru/RSS/news.xml", Category: dom},
		{ID: "rbc", Name: "РБК", URL: "https://rssexport.rbc.ru/rbcnews/news/30/full.rss", Category: dom},
		{ID: "vedomosti", Name: "Ведомости", URL: "https://www.vedomosti.ru/rss/news", Category: dom},
		{ID: "mk", Name: "Московский комсомолец", URL: "https://www.mk.ru/rss/index.xml", Category: dom},
		{ID: "gazeta", Name: "Газета.Ru", URL: "https://www.gazeta.ru/export/rss/lenta.xml", Category: dom},
		{ID: "meduza", Name: "Meduza", URL: "https://meduza.io/rss2/all", Category: dom},
		{ID: "fontanka", Name: "Фонтанка.ру", URL: "https://www.fontanka.ru/fontanka.rss", Category: dom},
		{ID: "sport_express", Name: "Спорт-Экспресс", URL: "https://www.sport-express.ru/services/materials/news/se/", Category: dom},
		{ID: "interfax", Name: "Интерфакс", URL: "http://www.interfax.ru/rss.asp", Category: dom},
		{ID: "rg", Name: "Российская газета", URL: "https://rg.ru/xml/index.xml", Category: dom},
		{ID: "kp", Name: "Комсомольская правда", URL: "https://www.kp.ru/rss/allsections.xml", Category: dom},
		{ID: "ai", Name: "Афтершок", URL: "https://www.aftershock.news/rss.xml", Category: dom},
		{ID: "vz", Name: "Взгляд", URL: "https://vz.ru/rss.xml", Category: dom},

		{ID: "bbc", Name: "BBC News", URL: "https://feeds.bbci.co.uk/news/rss.xml", Category: intl},
		{ID: "nytimes", Name: "New York Times", URL: "https://rss.nytimes.com/services/xml/rss/nyt/HomePage.xml", Category: intl},
		{ID: "reuters", Name: "Reuters", URL: "http://feeds.reuters.com/reuters/topNews", Category: intl},
		{ID: "cnn", Name: "CNN", URL: "http://rss.cnn.com/rss/edition.rss", Category: intl},
		{ID: "npr", Name: "NPR", URL: "https://feeds.npr.org/1001/rss.xml", Category: intl},
		{ID: "dw", Name: "Deutsche Welle", URL: "https://rss.dw.com/rdf/rss-en-top", Category: intl},
		{ID: "aljazeera", Name: "Al Jazeera", URL: "https://www.aljazeera.com/xml/rss/all.xml", Category: intl},
		{ID: "bloomberg", Name: "Bloomberg", URL: "https://www.bloomberg.com/feeds/podcasts/etf_report.xml", Category: intl},
		{ID: "ft", Name: "Financial Times", URL: "https://www.ft.com/rss/home", Category: intl},
		{ID: "wsj", Name: "Wall Street Journal", URL: "https://feeds.a.dj.com/rss/RSSWorldNews.xml", Category: intl},
		{ID: "guardian", Name: "The Guardian", URL: "https://www.theguardian.com/world/rss", Category: intl},
		{ID: "euronews", Name: "Euronews", URL: "https://www.euronews.com/rss", Category: intl},

		{ID: "belta", Name: "БЕЛТА", URL: "https://www.belta.by/rss/main", Category: ra},
		{ID: "tut", Name: "TUT.BY", URL: "https://news.tut.by/rss/index.rss", Category: ra},

		{ID: "kazinform", Name: "Казинформ", URL: "https://www.inform.kz/rss/ru", Category: rb},
		{ID: "tengrinews", Name: "Tengrinews", URL: "https://tengrinews.kz/rss/", Category: rb},
	}
}
