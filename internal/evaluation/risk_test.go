package evaluation

import (
	"testing"
	"time"
)

func TestCountTriggers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		note string
		want int
	}{
		{name: "空のノートは0", note: "", want: 0},
		{name: "空白のみのノートは0", note: "   ", want: 0},
		{name: "トリガー語を含まない", note: "Le patient déclare qu'il se sent très bien", want: 0},
		{name: "アクセントの有無を区別しない", note: "Hemoglobine A1C supérieure au niveau recommandé", want: 1},
		{name: "大文字小文字と区切り文字を区別しない", note: "HÉMOGLOBINE-a1c, CHOLESTEROL", want: 2},
		{name: "同じ語は1回だけ数える", note: "Poids, poids, POIDS", want: 1},
		{name: "語の一部として含まれても数える", note: "Anormale", want: 1},
		{name: "FumeurはFumeuseに含まれない", note: "Fumeuse", want: 1},
		{name: "複数の語", note: "Taille, Poids, Cholestérol, Vertiges et Réaction", want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CountTriggers(tt.note); got != tt.want {
				t.Errorf("CountTriggers(%q) = %d, want %d", tt.note, got, tt.want)
			}
		})
	}
}

func TestAge(t *testing.T) {
	t.Parallel()

	dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "誕生日の前日", now: time.Date(2020, 6, 14, 0, 0, 0, 0, time.UTC), want: 29},
		{name: "誕生日当日", now: time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC), want: 30},
		{name: "誕生月より前", now: time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC), want: 29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Age(dob, tt.now); got != tt.want {
				t.Errorf("Age() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAssess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		gender   string
		age      int
		triggers int
		want     RiskLevel
	}{
		{name: "30歳未満男性で2語はNONE", gender: "M", age: 29, triggers: 2, want: RiskNone},
		{name: "30歳未満男性で3語はIN_DANGER", gender: "M", age: 29, triggers: 3, want: RiskInDanger},
		{name: "30歳未満男性で4語はIN_DANGER", gender: "M", age: 29, triggers: 4, want: RiskInDanger},
		{name: "30歳未満男性で5語はEARLY_ONSET", gender: "M", age: 29, triggers: 5, want: RiskEarlyOnset},
		{name: "30歳未満女性で3語はNONE", gender: "F", age: 20, triggers: 3, want: RiskNone},
		{name: "30歳未満女性で4語はIN_DANGER", gender: "F", age: 20, triggers: 4, want: RiskInDanger},
		{name: "30歳未満女性で6語はIN_DANGER", gender: "F", age: 20, triggers: 6, want: RiskInDanger},
		{name: "30歳未満女性で7語はEARLY_ONSET", gender: "F", age: 20, triggers: 7, want: RiskEarlyOnset},
		{name: "30歳以上で1語はNONE", gender: "M", age: 30, triggers: 1, want: RiskNone},
		{name: "30歳以上で2語はBORDERLINE", gender: "F", age: 30, triggers: 2, want: RiskBorderline},
		{name: "30歳以上で5語はBORDERLINE", gender: "M", age: 55, triggers: 5, want: RiskBorderline},
		{name: "30歳以上で6語はIN_DANGER", gender: "F", age: 55, triggers: 6, want: RiskInDanger},
		{name: "30歳以上で7語はIN_DANGER", gender: "M", age: 55, triggers: 7, want: RiskInDanger},
		{name: "30歳以上で8語はEARLY_ONSET", gender: "F", age: 80, triggers: 8, want: RiskEarlyOnset},
		{name: "30歳未満でも若年の閾値に届かなければBORDERLINEにはならない", gender: "M", age: 25, triggers: 2, want: RiskNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Assess(tt.gender, tt.age, tt.triggers); got != tt.want {
				t.Errorf("Assess(%q, %d, %d) = %s, want %s", tt.gender, tt.age, tt.triggers, got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("ノートがなければトリガー数に関係なくNONE", func(t *testing.T) {
		t.Parallel()
		p := Patient{Gender: "M", DateOfBirth: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}
		if got := Evaluate(p, nil, now); got != RiskNone {
			t.Errorf("Evaluate() = %s, want %s", got, RiskNone)
		}
	})

	t.Run("全ノートのトリガー数を合計して判定する", func(t *testing.T) {
		t.Parallel()
		p := Patient{Gender: "M", DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}
		notes := []Note{
			{Note: "Hémoglobine A1C anormale"},
			{Note: "Poids élevé"},
		}
		if got := Evaluate(p, notes, now); got != RiskBorderline {
			t.Errorf("Evaluate() = %s, want %s", got, RiskBorderline)
		}
	})
}
