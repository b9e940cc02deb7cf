package note

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nao1215/medilabo/pkg/apierror"
	"github.com/nao1215/medilabo/pkg/httpclient"
)

// fetchPatient はユーザーサービスから患者を取得する。
// ctxに保持された呼び出し元のAuthorizationヘッダーがそのまま転送されるため、
// ユーザーサービス側で担当医師の確認が行われる。
func (s *Server) fetchPatient(ctx context.Context, id string) (patient, error) {
	var p patient
	err := s.userClient.GetJSON(ctx, "/patients/"+url.PathEscape(id), &p)
	if err == nil {
		return p, nil
	}

	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusNotFound:
			return patient{}, apierror.NotFound("Patient could not be found")
		case http.StatusForbidden:
			return patient{}, apierror.Forbidden("User is not authorized to access this patient")
		}
	}
	return patient{}, apierror.Wrap(http.StatusInternalServerError, "Impossible de récupérer le patient",
		fmt.Errorf("患者 %s の取得に失敗: %w", id, err))
}
