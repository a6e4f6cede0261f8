package settings

// Scenario is a named learning context
type Scenario struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	IsActive bool   `yaml:"active"`
	IsCustom bool   `yaml:"custom"`
}

// TranslationEngine is the configuration of one translation provider.
// Credentials are empty by default.
type TranslationEngine struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	IsEnabled bool   `yaml:"enabled"`
	APIKey    string `yaml:"api_key,omitempty"`
	AppID     string `yaml:"app_id,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	Model     string `yaml:"model,omitempty"`
	Region    string `yaml:"region,omitempty"`
	ProjectID int    `yaml:"project_id,omitempty"`
}

// DictionaryEngine is the configuration of one dictionary lookup source
type DictionaryEngine struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Endpoint    string `yaml:"endpoint"`
	Link        string `yaml:"link"`
	IsEnabled   bool   `yaml:"enabled"`
	Priority    int    `yaml:"priority"`
	Description string `yaml:"description"`
}

// DefaultScenarios returns the initial scenarios
func DefaultScenarios() []Scenario {
	return []Scenario{
		{ID: "1", Name: "General English", IsActive: true},
		{ID: "2", Name: "IELTS / TOEFL"},
		{ID: "3", Name: "Computer Science"},
		{ID: "4", Name: "Travel", IsCustom: true},
	}
}

// DefaultTranslationEngines returns the initial translation engines. Only
// tencent is enabled.
func DefaultTranslationEngines() []TranslationEngine {
	return []TranslationEngine{
		{
			ID:        "tencent",
			Name:      "Tencent Translate",
			Type:      "standard",
			IsEnabled: true,
			Endpoint:  "tmt.tencentcloudapi.com",
			Region:    "ap-shanghai",
		},
		{ID: "google", Name: "Google Translate", Type: "standard", Endpoint: "https://translation.googleapis.com/language/translate/v2"},
		{ID: "gemini", Name: "Google Gemini", Type: "ai", Model: "gemini-2.5-flash"},
		{ID: "deepl", Name: "DeepL API", Type: "standard", Endpoint: "https://api-free.deepl.com/v2/translate"},
		{ID: "volcengine", Name: "Volcengine", Type: "standard"},
		{ID: "baidu", Name: "Baidu Translate", Type: "standard"},
		{ID: "iflytek", Name: "iFlytek", Type: "standard"},
		{ID: "custom-mock", Name: "Mock translation (no key needed)", Type: "standard"},
	}
}

// DefaultDictionaries returns the dictionary sources ordered by priority
func DefaultDictionaries() []DictionaryEngine {
	return []DictionaryEngine{
		{
			ID:          "youdao",
			Name:        "Youdao",
			Endpoint:    "https://dict.youdao.com/jsonapi",
			Link:        "https://dict.youdao.com/",
			IsEnabled:   true,
			Priority:    1,
			Description: "Most complete data set with audio, exam levels and Collins stars.",
		},
		{
			ID:          "iciba",
			Name:        "ICBA",
			Endpoint:    "https://dict-co.iciba.com/api/dictionary.php",
			Link:        "http://www.iciba.com/",
			IsEnabled:   true,
			Priority:    2,
			Description: "Classic dictionary with US/UK phonetics and bilingual examples.",
		},
		{
			ID:          "free-dict",
			Name:        "Free Dictionary API",
			Endpoint:    "https://api.dictionaryapi.dev/api/v2/entries/en/",
			Link:        "https://dictionaryapi.dev/",
			IsEnabled:   true,
			Priority:    3,
			Description: "English definitions.",
		},
		{
			ID:          "wiktionary",
			Name:        "Wiktionary API",
			Endpoint:    "https://en.wiktionary.org/api/rest_v1/page/definition/",
			Link:        "https://en.wiktionary.org/",
			IsEnabled:   true,
			Priority:    4,
			Description: "English only definitions, access can be unreliable.",
		},
	}
}
