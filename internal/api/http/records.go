package http

import (
	"net/http"
	"strconv"

	"github.com/so-ota-biz/fridge-chef/internal/api/domain"
	"github.com/so-ota-biz/fridge-chef/internal/api/service"
	"github.com/so-ota-biz/fridge-chef/pkg/authsdk"
	"github.com/so-ota-biz/fridge-chef/pkg/httpx"
	"github.com/so-ota-biz/fridge-chef/pkg/idx"
)

type RecordsHandler struct {
	Records *service.RecordService
}

// HandleCreate godoc
//
//	@Summary		Create a cooking record
//	@Tags			Records
//	@Security		CookieAuth
//	@Security		CSRFToken
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.CreateRecordRequest	true	"recipe, rating, memo"
//	@Success		201		{object}	authsdk.Record
//	@Failure		400		{object}	authsdk.APIError	"validation_failed"
//	@Failure		401		{object}	authsdk.APIError	"unauthenticated"
//	@Failure		403		{object}	authsdk.APIError	"csrf_forbidden"
//	@Router			/records [post].
func (h *RecordsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := subject(w, r)
	if !ok {
		return
	}

	var req authsdk.CreateRecordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrValidation.WithMessage(err.Error()).WriteError(w)
		return
	}

	rec, err := h.Records.Create(r.Context(), userID, service.CreateRecordInput{
		RecipeID:     req.RecipeID,
		CookedAt:     req.CookedAt,
		Rating:       req.Rating,
		Memo:         req.Memo,
		UserImageURL: req.UserImageURL,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toRecord(rec))
}

// HandleList godoc
//
//	@Summary		List cooking records
//	@Description	Returns one page of the caller's records, newest first by default.
//	@Tags			Records
//	@Security		CookieAuth
//	@Produce		json
//	@Param			recipeId	query		string	false	"only records of this recipe"
//	@Param			limit		query		int		false	"page size (1-100, default 20)"
//	@Param			offset		query		int		false	"records to skip"
//	@Param			sortBy		query		string	false	"cookedAt or createdAt"
//	@Param			order		query		string	false	"asc or desc"
//	@Success		200			{object}	authsdk.RecordList
//	@Failure		400			{object}	authsdk.APIError	"validation_failed"
//	@Failure		401			{object}	authsdk.APIError	"unauthenticated"
//	@Router			/records [get].
func (h *RecordsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := subject(w, r)
	if !ok {
		return
	}

	q, err := parseRecordQuery(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	q.UserID = userID

	records, total, err := h.Records.List(r.Context(), q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := authsdk.RecordList{Records: make([]authsdk.Record, len(records)), Total: total}
	for i, rec := range records {
		resp.Records[i] = toRecord(rec)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func parseRecordQuery(r *http.Request) (domain.RecordQuery, error) {
	v := r.URL.Query()
	q := domain.RecordQuery{
		RecipeID: v.Get("recipeId"),
		SortBy:   domain.RecordSort(v.Get("sortBy")),
		Desc:     true,
	}

	var err error
	if s := v.Get("limit"); s != "" {
		if q.Limit, err = strconv.Atoi(s); err != nil || q.Limit == 0 {
			return q, &service.ValidationError{Field: "limit", Message: "must be a number between 1 and 100"}
		}
	}
	if s := v.Get("offset"); s != "" {
		if q.Offset, err = strconv.Atoi(s); err != nil {
			return q, &service.ValidationError{Field: "offset", Message: "must be a number"}
		}
	}

	switch v.Get("order") {
	case "", "desc":
	case "asc":
		q.Desc = false
	default:
		return q, &service.ValidationError{Field: "order", Message: "must be asc or desc"}
	}
	return q, nil
}

// HandleGet godoc
//
//	@Summary		Get a cooking record
//	@Tags			Records
//	@Security		CookieAuth
//	@Produce		json
//	@Param			id	path		string	true	"record id"
//	@Success		200	{object}	authsdk.Record
//	@Failure		401	{object}	authsdk.APIError	"unauthenticated"
//	@Failure		403	{object}	authsdk.APIError	"forbidden"
//	@Failure		404	{object}	authsdk.APIError	"not_found"
//	@Router			/records/{id} [get].
func (h *RecordsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := subject(w, r)
	if !ok {
		return
	}

	id, ok := recordID(w, r)
	if !ok {
		return
	}

	rec, err := h.Records.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRecord(rec))
}

// HandleDelete godoc
//
//	@Summary		Delete a cooking record
//	@Tags			Records
//	@Security		CookieAuth
//	@Security		CSRFToken
//	@Param			id	path	string	true	"record id"
//	@Success		204
//	@Failure		401	{object}	authsdk.APIError	"unauthenticated"
//	@Failure		403	{object}	authsdk.APIError	"forbidden or csrf_forbidden"
//	@Failure		404	{object}	authsdk.APIError	"not_found"
//	@Router			/records/{id} [delete].
func (h *RecordsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := subject(w, r)
	if !ok {
		return
	}

	id, ok := recordID(w, r)
	if !ok {
		return
	}

	if err := h.Records.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// recordID reads the {id} path value. Anything that is not a ULID cannot
// name a record, so it answers 404 without a lookup.
func recordID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		authsdk.ErrNotFound.WriteError(w)
		return "", false
	}
	return id.String(), true
}
