package presale

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"presale-relay/internal/errs"
	"presale-relay/internal/logic/presale"
	"presale-relay/internal/svc"
	"presale-relay/internal/types"
)

func SubmitTransactionHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SubmitTransactionRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, errs.Internal("Transaction verification failed: %v", err))
			return
		}

		l := presale.NewSubmitTransaction(r.Context(), svcCtx)
		resp, err := l.SubmitTransaction(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
