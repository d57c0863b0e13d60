package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional values to embed in the message (for example,
// "path" or "option").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_option":
			msg = "オプションが不正です: {option}"
		case "depth_exceeded":
			msg = "定義のネストが深すぎます"
		case "cycle_truncated":
			msg = "{path} で再帰参照を検出しました。任意の値として扱います"
		case "unrepresentable":
			msg = "{kind} はスキーマで表現できないため省略しました"
		case "invalid_definition":
			msg = "定義が不正です"
		case "unsupported_keyword":
			msg = "未対応のキーワードです: {keyword}"
		}
	default: // "en"
		switch code {
		case "invalid_option":
			msg = "invalid option: {option}"
		case "depth_exceeded":
			msg = "definition nesting is too deep"
		case "cycle_truncated":
			msg = "Recursive reference detected at {path}! Defaulting to any"
		case "unrepresentable":
			msg = "{kind} has no schema representation and was omitted"
		case "invalid_definition":
			msg = "invalid definition"
		case "unsupported_keyword":
			msg = "unsupported keyword: {keyword}"
		}
	}
	if msg == "" {
		return code
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

type holder struct{ tr Translator }

var current atomic.Pointer[holder]

func init() { current.Store(&holder{dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	current.Store(&holder{dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(&holder{tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return current.Load().tr.Message(code, data) }
