package security

import (
	"errors"
	"strings"
	"time"
)

// BearerPrefix はAuthorizationヘッダーのBearerトークン接頭辞。
const BearerPrefix = "Bearer "

// Outcome はトークン検証の結果の内訳を表す。
// 認可の判定には使わず、ログで「提示なし」と「提示したが失敗」を区別するために使う。
type Outcome int

const (
	// OutcomeAbsent はAuthorizationヘッダーが無い、またはBearer形式でないことを表す。
	OutcomeAbsent Outcome = iota
	// OutcomeMalformed はトークンの形式が不正であることを表す。
	OutcomeMalformed
	// OutcomeSignatureInvalid は署名の検証に失敗したことを表す。
	OutcomeSignatureInvalid
	// OutcomeExpired はトークンの有効期限が切れていることを表す。
	OutcomeExpired
	// OutcomeUnknownRole はクレームのロールが既知のロールでないことを表す。
	OutcomeUnknownRole
	// OutcomeValid は検証に成功したことを表す。
	OutcomeValid
)

// String はOutcomeのログ用表現を返す。
func (o Outcome) String() string {
	switch o {
	case OutcomeAbsent:
		return "absent"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeSignatureInvalid:
		return "signature_invalid"
	case OutcomeExpired:
		return "expired"
	case OutcomeUnknownRole:
		return "unknown_role"
	case OutcomeValid:
		return "valid"
	default:
		return "unknown"
	}
}

// Verifier はAuthorizationヘッダーの値からPrincipalを取り出す。
// 不正なトークンでもエラーは返さず、匿名として扱う。
type Verifier struct {
	// secret はHMAC署名用シークレット。
	secret []byte
	// now は現在時刻を返す関数。
	now func() time.Time
}

// NewVerifier は新しいVerifierを生成する。
func NewVerifier(cfg Config, opts ...Option) (*Verifier, error) {
	if cfg.Secret == "" {
		return nil, ErrEmptySecret
	}
	o := buildOptions(opts)
	return &Verifier{
		secret: []byte(cfg.Secret),
		now:    o.now,
	}, nil
}

// Verify はAuthorizationヘッダーの値を検証し、Principalを返す。
// 有効なPrincipalが得られない場合は第2戻り値がfalseになる。
func (v *Verifier) Verify(header string) (Principal, bool) {
	p, outcome := v.Inspect(header)
	return p, outcome == OutcomeValid
}

// Inspect はVerifyと同じ判定を行い、結果の内訳も返す。
func (v *Verifier) Inspect(header string) (Principal, Outcome) {
	token, found := strings.CutPrefix(header, BearerPrefix)
	if !found {
		return Principal{}, OutcomeAbsent
	}

	claims, err := Decode(token, v.secret)
	if err != nil {
		if errors.Is(err, ErrSignatureInvalid) {
			return Principal{}, OutcomeSignatureInvalid
		}
		return Principal{}, OutcomeMalformed
	}

	if v.now().After(claims.ExpiresAt) {
		return Principal{}, OutcomeExpired
	}

	role, ok := ParseRole(claims.Role)
	if !ok {
		return Principal{}, OutcomeUnknownRole
	}

	return Principal{SubjectID: claims.Subject, Role: role}, OutcomeValid
}
