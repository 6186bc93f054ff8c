// Package validate はリクエストペイロードのスキーマ検証を提供する。
package validate

import (
	"fmt"
	"net/mail"
	"unicode/utf8"
)

// Kind はフィールドの期待型を表す。
type Kind string

const (
	// KindString は文字列フィールドを示す。
	KindString Kind = "string"
	// KindBool は真偽値フィールドを示す。
	KindBool Kind = "bool"
)

// Format は文字列フィールドの追加形式制約を表す。
type Format string

const (
	// FormatNone は形式制約なしを示す。
	FormatNone Format = ""
	// FormatEmail はメールアドレス形式を示す。
	FormatEmail Format = "email"
)

// Field は1フィールド分の制約を表す。
// MinLen/MaxLenは文字列フィールドにのみ適用され、0は未指定を意味する。
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	MinLen   int
	MaxLen   int
	Format   Format
}

// FieldError は1フィールド分の検証エラーを表す。
type FieldError struct {
	Field   string
	Message string
}

// Schema はフィールド制約の順序付き集合を表す。
// 検証はフィールド宣言順に安定して実行される。
type Schema struct {
	fields []Field
}

// NewSchema はSchemaを生成する。フィールドの順序が検証順序になる。
func NewSchema(fields ...Field) Schema {
	return Schema{fields: fields}
}

// Validate はペイロードをスキーマに対して検証する。
// 成功時は既知フィールドのみを含む正規化済みマップを返す。
// 失敗時はフィールドごとに最初に検出されたエラーを宣言順に収集して返す。
// スキーマに存在しない余分なフィールドは拒否せず無視する。
// 副作用はなく、入力を変更しない純粋関数として動作する。
func (s Schema) Validate(payload map[string]any) (map[string]any, []FieldError) {
	normalized := make(map[string]any, len(s.fields))
	var fieldErrs []FieldError

	for _, f := range s.fields {
		raw, present := payload[f.Name]

		if !present || raw == nil {
			if f.Required {
				fieldErrs = append(fieldErrs, FieldError{
					Field:   f.Name,
					Message: fmt.Sprintf("%sは必須です。", f.Name),
				})
			}
			continue
		}

		value, ferr := checkField(f, raw)
		if ferr != nil {
			fieldErrs = append(fieldErrs, *ferr)
			continue
		}

		normalized[f.Name] = value
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	return normalized, nil
}

// checkField は1フィールド分の型・長さ・形式制約を検証する。
// 最初に違反した制約のエラーのみを返す。
func checkField(f Field, raw any) (any, *FieldError) {
	switch f.Kind {
	case KindString:
		str, ok := raw.(string)
		if !ok {
			return nil, &FieldError{
				Field:   f.Name,
				Message: fmt.Sprintf("%sは文字列で指定してください。", f.Name),
			}
		}

		length := utf8.RuneCountInString(str)
		if f.MinLen > 0 && length < f.MinLen {
			return nil, &FieldError{
				Field:   f.Name,
				Message: fmt.Sprintf("%sは%d文字以上で指定してください。", f.Name, f.MinLen),
			}
		}
		if f.MaxLen > 0 && length > f.MaxLen {
			return nil, &FieldError{
				Field:   f.Name,
				Message: fmt.Sprintf("%sは%d文字以内で指定してください。", f.Name, f.MaxLen),
			}
		}

		if f.Format == FormatEmail {
			if _, err := mail.ParseAddress(str); err != nil {
				return nil, &FieldError{
					Field:   f.Name,
					Message: fmt.Sprintf("%sはメールアドレス形式で指定してください。", f.Name),
				}
			}
		}

		return str, nil

	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, &FieldError{
				Field:   f.Name,
				Message: fmt.Sprintf("%sは真偽値で指定してください。", f.Name),
			}
		}
		return b, nil

	default:
		return nil, &FieldError{
			Field:   f.Name,
			Message: fmt.Sprintf("%sの型定義が不正です。", f.Name),
		}
	}
}
