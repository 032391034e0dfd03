package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"

	presalehandler "presale-relay/internal/handler/presale"
	"presale-relay/internal/svc"
	"presale-relay/internal/types"
)

const Version = "1.0.0"

func RegisterHandlers(server *rest.Server, svcCtx *svc.ServiceContext) {
	server.AddRoutes([]rest.Route{
		{
			Method:  http.MethodPost,
			Path:    "/create-transaction",
			Handler: presalehandler.CreateTransactionHandler(svcCtx),
		},
		{
			Method:  http.MethodPost,
			Path:    "/verify-and-submit-transaction",
			Handler: presalehandler.SubmitTransactionHandler(svcCtx),
		},
		{
			Method:  http.MethodGet,
			Path:    "/health",
			Handler: HealthHandler(svcCtx),
		},
		{
			Method:  http.MethodGet,
			Path:    "/",
			Handler: IndexHandler(svcCtx),
		},
	})
}

func IndexHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.OkJsonCtx(r.Context(), w, types.IndexResponse{
			Service: svcCtx.Config.Rest.Name,
			Version: Version,
			Endpoints: []string{
				"POST /create-transaction",
				"POST /verify-and-submit-transaction",
				"GET /health",
			},
		})
	}
}

// NotFoundHandler keeps unmatched routes on the same JSON error contract as
// everything else.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Route not found"}`))
	})
}
