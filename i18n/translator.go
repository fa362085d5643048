package i18n

import "sync"

// Translator retrieves localized messages for error kind and issue codes.
// data provides optional metadata to embed in the message (for example,
// "name" or "line").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "address_parse":
			return "アドレスの解析に失敗しました"
		case "boolean_parse":
			return "真偽値の解析に失敗しました"
		case "number_parse":
			return "数値の解析に失敗しました"
		case "uuid_parse":
			return "UUIDの解析に失敗しました"
		case "date_parse":
			return "日付の解析に失敗しました"
		case "duration_parse":
			return "期間の解析に失敗しました"
		case "string_parse":
			return "文字列の解析に失敗しました"
		case "uri_parse":
			return "URIの解析に失敗しました"
		case "uri_must_be_absolute":
			return "URIは絶対URIである必要があります"
		case "identifier_illegal_first_char":
			return "識別子の先頭文字が不正です"
		case "identifier_illegal_char":
			return "識別子に不正な文字が含まれています"
		case "unrecognized_type_name":
			return "未知の型名です"
		case "invalid_type":
			return "型が不正です"
		case "invalid_format":
			return "形式が不正です"
		case "unknown_key":
			return "未知のキーです"
		case "parse_error":
			return "解析エラー"
		case "duplicate_key":
			return "キーが重複しています"
		}
	default: // "en"
		switch code {
		case "address_parse":
			return "address parsing error"
		case "boolean_parse":
			return "boolean parsing error"
		case "number_parse":
			return "number parsing error"
		case "uuid_parse":
			return "UUID parsing error"
		case "date_parse":
			return "date parsing error"
		case "duration_parse":
			return "duration parsing error"
		case "string_parse":
			return "string parsing error"
		case "uri_parse":
			return "URI parsing error"
		case "uri_must_be_absolute":
			return "URI must be absolute"
		case "identifier_illegal_first_char":
			return "identifier has an illegal first character"
		case "identifier_illegal_char":
			return "identifier has an illegal character"
		case "unrecognized_type_name":
			return "not a recognized type"
		case "invalid_type":
			return "invalid type"
		case "invalid_format":
			return "invalid format"
		case "unknown_key":
			return "unknown key"
		case "parse_error":
			return "parse error"
		case "duplicate_key":
			return "duplicate key"
		}
	}
	return code
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). A nil Translator restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
