package app

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/gorilla/mux"
)

const queryRoute = "/astroport/{module}/query"

// QueryContextFn returns a context on the latest committed state
type QueryContextFn func() (sdk.Context, error)

// RegisterQueryRoutes serves the module queries over HTTP. The JSON query is read from the request
// body of a POST or from the "q" url parameter of a GET. State changes of a query are discarded.
func RegisterQueryRoutes(rtr *mux.Router, router *ModuleRouter, queryCtx QueryContextFn) {
	rtr.HandleFunc(queryRoute, queryHandlerFn(router, queryCtx)).Methods(http.MethodGet, http.MethodPost)
}

func queryHandlerFn(router *ModuleRouter, queryCtx QueryContextFn) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		module := mux.Vars(r)["module"]
		var query []byte
		if r.Method == http.MethodPost {
			bz, err := ioutil.ReadAll(r.Body)
			if err != nil {
				writeErrorResponse(w, http.StatusBadRequest, err)
				return
			}
			query = bz
		} else {
			query = []byte(r.URL.Query().Get("q"))
		}
		if len(query) == 0 {
			writeErrorResponse(w, http.StatusBadRequest, sdkerrors.Wrap(sdkerrors.ErrInvalidRequest, "empty query"))
			return
		}

		ctx, err := queryCtx()
		if err != nil {
			writeErrorResponse(w, http.StatusServiceUnavailable, err)
			return
		}
		ctx, _ = ctx.CacheContext()
		rsp, err := router.Query(ctx, module, query)
		if err != nil {
			writeErrorResponse(w, httpStatus(err), err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(rsp)
	}
}

func httpStatus(err error) int {
	switch {
	case sdkerrors.ErrUnknownRequest.Is(err):
		return http.StatusNotFound
	case sdkerrors.ErrNotFound.Is(err):
		return http.StatusNotFound
	case sdkerrors.ErrJSONUnmarshal.Is(err), sdkerrors.ErrInvalidRequest.Is(err), sdkerrors.ErrInvalidAddress.Is(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
