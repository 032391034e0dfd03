package presale

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"presale-relay/internal/errs"
	"presale-relay/internal/logic/presale"
	"presale-relay/internal/svc"
	"presale-relay/internal/types"
)

func CreateTransactionHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CreateTransactionRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, errs.BadRequest("%v", err))
			return
		}

		l := presale.NewCreateTransaction(r.Context(), svcCtx)
		resp, err := l.CreateTransaction(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
