package evaluation

import (
	"encoding/json"
	"fmt"
	"time"
)

// dateLayout は生年月日のJSON表現。
const dateLayout = "2006-01-02"

// Patient はユーザーサービスから取得する患者情報のうち、判定に使う項目。
type Patient struct {
	ID          string
	Gender      string
	DateOfBirth time.Time
}

// UnmarshalJSON はユーザーサービスの患者レスポンスを読み込む。
func (p *Patient) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string `json:"id"`
		Gender      string `json:"gender"`
		DateOfBirth string `json:"dateOfBirth"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	dob, err := time.ParseInLocation(dateLayout, raw.DateOfBirth, time.Local)
	if err != nil {
		return fmt.Errorf("生年月日 %q の解析に失敗: %w", raw.DateOfBirth, err)
	}
	*p = Patient{ID: raw.ID, Gender: raw.Gender, DateOfBirth: dob}
	return nil
}

// Note はノートサービスから取得するノートのうち、判定に使う項目。
type Note struct {
	ID   string `json:"id"`
	Note string `json:"note"`
}
