package apierror

// Messages はエラー種別ごとの利用者向けメッセージ。
// サービスごとに文言が異なるため、起動時にサービス側で指定する。
type Messages struct {
	Unauthenticated string
	Forbidden       string
	RouteNotFound   string
	Internal        string
	Validation      string
	BadGateway      string
}

// BackendMessages はバックエンドサービス（user, note, evaluation）のメッセージ。
var BackendMessages = Messages{
	Unauthenticated: "Vous n'êtes pas authentifiés",
	Forbidden:       "Vous n'êtes pas autorisés à consulter cette ressource",
	RouteNotFound:   "Route inexistante",
	Internal:        "Une erreur inattendue est survenue",
	Validation:      "Veuillez vérifier les données saisies",
	BadGateway:      "Service indisponible",
}

// GatewayMessages はgatewayサービスのメッセージ。
var GatewayMessages = Messages{
	Unauthenticated: "Non autorisé",
	Forbidden:       "Accès interdit",
	RouteNotFound:   "Route inexistante",
	Internal:        "Une erreur inattendue est survenue",
	Validation:      "Veuillez vérifier les données saisies",
	BadGateway:      "Service indisponible",
}
