package i18n

import "sync"

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "type_mismatch":
			return "型が不正です"
		case "missing_field":
			return "必須フィールドが不足しています"
		case "unexpected_field":
			return "未知のフィールドです"
		case "unknown_constructor":
			return "未知のコンストラクタです"
		case "malformed_sum_wrapper":
			return "ラッパーオブジェクトはキーを1つだけ持つ必要があります"
		case "key_decoding_failure":
			return "マップのキーを復元できません"
		case "conversion":
			return "値の変換に失敗しました"
		case "duplicate_tag":
			return "変換後のタグが重複しています"
		case "invalid_discriminator_payload":
			return "判別フィールドを使うにはペイロードがオブジェクトである必要があります"
		case "discriminator_field_conflict":
			return "ペイロードに判別フィールドと同名のフィールドがあります"
		case "duplicate_field":
			return "変換後のフィールド名が重複しています"
		case "invalid_config":
			return "設定が不正です"
		case "not_registered":
			return "型が登録されていません"
		case "already_registered":
			return "型は登録済みです"
		}
	default: // "en"
		switch code {
		case "type_mismatch":
			return "type mismatch"
		case "missing_field":
			return "required field missing"
		case "unexpected_field":
			return "unexpected field"
		case "unknown_constructor":
			return "unknown constructor"
		case "malformed_sum_wrapper":
			return "sum wrapper must have exactly one key"
		case "key_decoding_failure":
			return "map key could not be decoded"
		case "conversion":
			return "conversion failed"
		case "duplicate_tag":
			return "transformed tags collide"
		case "invalid_discriminator_payload":
			return "discriminated payload must encode to an object"
		case "discriminator_field_conflict":
			return "payload already has a field named like the discriminator"
		case "duplicate_field":
			return "transformed field names collide"
		case "invalid_config":
			return "invalid configuration"
		case "not_registered":
			return "type not registered"
		case "already_registered":
			return "type already registered"
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
// dictionary version).
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
