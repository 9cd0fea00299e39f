package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meetingtax/meetingtax/pkg/domain/model/auth"
	"github.com/meetingtax/meetingtax/pkg/usecase"
)

type settingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func getSettingHandler(settingUC *usecase.SettingUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")

		setting, err := settingUC.Get(r.Context(), key)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, settingResponse{Key: setting.Key, Value: setting.Value})
	}
}

func setSettingHandler(settingUC *usecase.SettingUseCase) http.HandlerFunc {
	type request struct {
		Value string `json:"value"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		key := chi.URLParam(r, "key")
		setting, err := settingUC.Set(r.Context(), auth.UserFrom(r.Context()), key, req.Value)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, settingResponse{Key: setting.Key, Value: setting.Value})
	}
}
