package user

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// passwordSymbols は新しいパスワードに含める必要がある記号の候補。
const passwordSymbols = `!@#$%^&*()_+=-{}[]:;"'<>,.?/`

// minPasswordLength はパスワードの最小文字数。
const minPasswordLength = 6

// DefaultPassword は管理者がユーザーを作成・リセットした際の初期パスワードを返す。
// 姓の先頭3文字（1文字目は大文字、残りは小文字。3文字に満たない場合は'z'で補う）、
// 生年、"!" を連結した文字列になる。dateOfBirthはYYYY-MM-DD形式。
func DefaultPassword(lastName, dateOfBirth string) string {
	name := []rune(lastName)
	for len(name) < 3 {
		name = append(name, 'z')
	}

	var b strings.Builder
	b.WriteRune(unicode.ToUpper(name[0]))
	b.WriteString(strings.ToLower(string(name[1:3])))
	year, _, _ := strings.Cut(dateOfBirth, "-")
	b.WriteString(year)
	b.WriteString("!")
	return b.String()
}

// ValidPasswordFormat はパスワードが小文字、大文字、数字、記号をそれぞれ1文字以上含み、
// 6文字以上であるかどうかを返す。
func ValidPasswordFormat(password string) bool {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
