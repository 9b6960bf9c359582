package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyFile               = "file"
	KeyNewTab             = "new_tab"
	KeyExit               = "exit"
	KeyHelp               = "help"
	KeyAbout              = "about"
	KeyAboutTitle         = "about_title"
	KeyAboutText          = "about_text"
	KeySettings           = "settings"
	KeyLanguage           = "language"
	KeyURL                = "url"
	KeyEnterURL           = "enter_url"
	KeySaveTo             = "save_to"
	KeyBrowse             = "browse"
	KeyConnections        = "connections"
	KeyStart              = "start"
	KeyStop               = "stop"
	KeyOpenFolder         = "open_folder"
	KeyNotice             = "notice"
	KeyError              = "error"
	KeyPleaseEnterURL     = "please_enter_url"
	KeyInvalidURL         = "invalid_url"
	KeyChooseDestination  = "choose_destination"
	KeyHelperFailed       = "helper_failed"
	KeyTabBusy            = "tab_busy"
	KeyMaxTabs            = "max_tabs"
	KeyExitPrompt         = "exit_prompt"
	KeyDontAskAgain       = "dont_ask_again"
	KeyClose              = "close"
	KeyCancel             = "cancel"
	KeySave               = "save"
	KeyDownloadDirectory  = "download_directory"
	KeyDefaultConnections = "default_connections"
	KeyAskBeforeExit      = "ask_before_exit"
	KeySettingsSaved      = "settings_saved"
	KeyStatusIdle         = "status_idle"
	KeyStatusRunning      = "status_running"
	KeyStatusStopping     = "status_stopping"
	KeyErrorOpeningFolder = "error_opening_folder"
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
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

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
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"zh": "中文",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "Aprit - %s",
		KeyFile:               "File",
		KeyNewTab:             "New Tab",
		KeyExit:               "Exit",
		KeyHelp:               "Help",
		KeyAbout:              "About",
		KeyAboutTitle:         "About Aprit",
		KeyAboutText:          "Aprit %s\nA lightweight download tool based on aria2",
		KeySettings:           "Settings",
		KeyLanguage:           "Language",
		KeyURL:                "URL:",
		KeyEnterURL:           "Direct file link (http/https/ftp)",
		KeySaveTo:             "Save to:",
		KeyBrowse:             "Browse",
		KeyConnections:        "Connections:",
		KeyStart:              "Start",
		KeyStop:               "Stop",
		KeyOpenFolder:         "Open Folder",
		KeyNotice:             "Notice",
		KeyError:              "Error",
		KeyPleaseEnterURL:     "Please enter a valid download link!",
		KeyInvalidURL:         "Unsupported download link",
		KeyChooseDestination:  "Please choose a save location",
		KeyHelperFailed:       "Failed to start aria2, make sure aria2 is installed!",
		KeyTabBusy:            "This tab is downloading and cannot be closed!",
		KeyMaxTabs:            "At most %d tabs can be open!",
		KeyExitPrompt:         "Downloads are in progress or several tabs are open. Exit anyway?",
		KeyDontAskAgain:       "Don't ask again",
		KeyClose:              "Close",
		KeyCancel:             "Cancel",
		KeySave:               "Save",
		KeyDownloadDirectory:  "Default save location",
		KeyDefaultConnections: "Default connections",
		KeyAskBeforeExit:      "Ask before exit",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyStatusIdle:         "Idle",
		KeyStatusRunning:      "Downloading",
		KeyStatusStopping:     "Stopping...",
		KeyErrorOpeningFolder: "Error opening folder",
	}

	// Chinese texts
	l.texts["zh"] = map[string]string{
		KeyAppTitle:           "Aprit - %s",
		KeyFile:               "文件",
		KeyNewTab:             "新建标签页",
		KeyExit:               "退出",
		KeyHelp:               "帮助",
		KeyAbout:              "关于",
		KeyAboutTitle:         "关于 Aprit",
		KeyAboutText:          "Aprit %s\n基于 Aria2 的轻量级下载工具",
		KeySettings:           "设置",
		KeyLanguage:           "语言",
		KeyURL:                "下载链接:",
		KeyEnterURL:           "输入文件直链（如http/https/ftp）",
		KeySaveTo:             "保存位置:",
		KeyBrowse:             "浏览",
		KeyConnections:        "线程数:",
		KeyStart:              "开始下载",
		KeyStop:               "停止下载",
		KeyOpenFolder:         "打开目录",
		KeyNotice:             "提示",
		KeyError:              "错误",
		KeyPleaseEnterURL:     "请输入有效的下载链接！",
		KeyInvalidURL:         "不支持的下载链接",
		KeyChooseDestination:  "请选择保存位置",
		KeyHelperFailed:       "Aria2启动失败，请确保已安装aria2！",
		KeyTabBusy:            "该标签页正在下载，无法关闭！",
		KeyMaxTabs:            "最多只能打开%d个标签页！",
		KeyExitPrompt:         "当前有下载任务进行中或多个标签页未关闭，确定要退出吗？",
		KeyDontAskAgain:       "以后不再提示",
		KeyClose:              "关闭",
		KeyCancel:             "取消",
		KeySave:               "保存",
		KeyDownloadDirectory:  "默认保存位置",
		KeyDefaultConnections: "默认线程数",
		KeyAskBeforeExit:      "退出前提示",
		KeySettingsSaved:      "设置已保存！",
		KeyStatusIdle:         "空闲",
		KeyStatusRunning:      "下载中",
		KeyStatusStopping:     "正在停止...",
		KeyErrorOpeningFolder: "无法打开目录",
	}
}
