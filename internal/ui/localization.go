package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle       = "app_title"
	KeySettings       = "settings"
	KeySettingsTitle  = "settings_title"
	KeyFile           = "file"
	KeyOpenImage      = "open_image"
	KeyEnterImageURL  = "enter_image_url"
	KeyWebClient      = "web_client"
	KeyProxyRules     = "proxy_rules"
	KeyProxyHint      = "proxy_hint"
	KeyZoomFactor     = "zoom_factor"
	KeyTheme          = "theme"
	KeyDefaultTheme   = "default_theme"
	KeySave           = "save"
	KeyInvalidURL     = "invalid_url"
	KeyPleaseEnterURL = "please_enter_url"
	KeyInvalidZoom    = "invalid_zoom"
	KeyOpening        = "opening"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if text, found := l.texts["en"][key]; found {
		return text
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:       "Ghetto Skype",
		KeySettings:       "Settings",
		KeySettingsTitle:  "Ghetto Skype Settings",
		KeyFile:           "File",
		KeyOpenImage:      "Open image",
		KeyEnterImageURL:  "Image URL (https://...)",
		KeyWebClient:      "Open web client",
		KeyProxyRules:     "Proxy rules",
		KeyProxyHint:      "e.g. socks5://127.0.0.1:1080 or http=foopy:80;https=direct://",
		KeyZoomFactor:     "Zoom factor",
		KeyTheme:          "Theme",
		KeyDefaultTheme:   "(default)",
		KeySave:           "Save",
		KeyInvalidURL:     "Invalid URL",
		KeyPleaseEnterURL: "Please enter a URL",
		KeyInvalidZoom:    "Zoom factor must be a number between 0.25 and 5",
		KeyOpening:        "Opening image...",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:       "Ghetto Skype",
		KeySettings:       "Настройки",
		KeySettingsTitle:  "Настройки Ghetto Skype",
		KeyFile:           "Файл",
		KeyOpenImage:      "Открыть изображение",
		KeyEnterImageURL:  "Адрес изображения (https://...)",
		KeyWebClient:      "Открыть веб-клиент",
		KeyProxyRules:     "Правила прокси",
		KeyZoomFactor:     "Масштаб",
		KeyTheme:          "Тема",
		KeyDefaultTheme:   "(по умолчанию)",
		KeySave:           "Сохранить",
		KeyInvalidURL:     "Неверный адрес",
		KeyPleaseEnterURL: "Введите адрес",
		KeyInvalidZoom:    "Масштаб должен быть числом от 0.25 до 5",
		KeyOpening:        "Открываем изображение...",
	}
}
