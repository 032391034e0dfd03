package handler

import (
	"net/http"
	"time"

	"github.com/zeromicro/go-zero/rest/httpx"

	"presale-relay/internal/svc"
	"presale-relay/internal/types"
)

func HealthHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.OkJsonCtx(r.Context(), w, types.HealthResponse{
			Status:    "OK",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Env:       svcCtx.Config.Presale.Env,
		})
	}
}
