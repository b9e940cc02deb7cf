package evaluation

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RiskLevel は糖尿病リスクのレベル。
type RiskLevel string

const (
	// RiskNone はリスクなし。
	RiskNone RiskLevel = "NONE"
	// RiskBorderline は境界域。
	RiskBorderline RiskLevel = "BORDERLINE"
	// RiskInDanger は危険。
	RiskInDanger RiskLevel = "IN_DANGER"
	// RiskEarlyOnset は早期発症。
	RiskEarlyOnset RiskLevel = "EARLY_ONSET"
)

// youngAgeLimit はこの年齢未満を若年として別の閾値で判定する。
const youngAgeLimit = 30

// TriggerTerms はノートから数えるトリガー語。
var TriggerTerms = []string{
	"Hémoglobine A1C",
	"Microalbumine",
	"Taille",
	"Poids",
	"Fumeur",
	"Fumeuse",
	"Anormal",
	"Cholestérol",
	"Vertiges",
	"Rechute",
	"Réaction",
	"Anticorps",
}

// normalizedTerms は照合用に正規化したトリガー語。
var normalizedTerms = func() []string {
	terms := make([]string, len(TriggerTerms))
	for i, t := range TriggerTerms {
		terms[i] = normalizeForMatching(t)
	}
	return terms
}()

// normalizeForMatching はアクセント記号を取り除き、英数字以外を削除して小文字にする。
// "Hémoglobine A1C" は "hemoglobinea1c" になる。
func normalizeForMatching(text string) string {
	// transform.Chainは状態を持つため呼び出しごとに生成する
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.M)))
	stripped, _, err := transform.String(t, text)
	if err != nil {
		stripped = text
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// CountTriggers はノートに含まれるトリガー語の種類数を返す。
// 同じ語が複数回現れても1として数える。
func CountTriggers(note string) int {
	if strings.TrimSpace(note) == "" {
		return 0
	}
	normalized := normalizeForMatching(note)
	count := 0
	for _, term := range normalizedTerms {
		if strings.Contains(normalized, term) {
			count++
		}
	}
	return count
}

// Age はnow時点での満年齢を返す。
func Age(dateOfBirth, now time.Time) int {
	age := now.Year() - dateOfBirth.Year()
	if now.Month() < dateOfBirth.Month() ||
		(now.Month() == dateOfBirth.Month() && now.Day() < dateOfBirth.Day()) {
		age--
	}
	return age
}

// Assess は性別、年齢、トリガー語の合計数からリスクレベルを判定する。
// genderは"M"または"F"。
func Assess(gender string, age, triggers int) RiskLevel {
	if age < youngAgeLimit {
		if gender == "M" {
			switch {
			case triggers >= 5:
				return RiskEarlyOnset
			case triggers >= 3:
				return RiskInDanger
			}
			return RiskNone
		}
		switch {
		case triggers >= 7:
			return RiskEarlyOnset
		case triggers >= 4:
			return RiskInDanger
		}
		return RiskNone
	}

	switch {
	case triggers >= 8:
		return RiskEarlyOnset
	case triggers >= 6:
		return RiskInDanger
	case triggers >= 2:
		return RiskBorderline
	}
	return RiskNone
}

// Evaluate は患者とノートからリスクレベルを判定する。ノートが無い場合はRiskNone。
func Evaluate(p Patient, notes []Note, now time.Time) RiskLevel {
	if len(notes) == 0 {
		return RiskNone
	}
	triggers := 0
	for _, n := range notes {
		triggers += CountTriggers(n.Note)
	}
	return Assess(p.Gender, Age(p.DateOfBirth, now), triggers)
}
