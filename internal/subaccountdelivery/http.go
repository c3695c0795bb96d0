// Package subaccountdelivery manages delivery layer of sub-accounts.
package subaccountdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/projection"
	"github.com/go-petr/pet-ledger/pkg/web"
)

const entity = domain.EntitySubAccount

// Service provides service layer interface needed by sub-account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package subaccountdelivery
type Service interface {
	GetOne(ctx context.Context, id int32, relations []string, view projection.View) (projection.Object, error)
	GetAll(ctx context.Context, relations []string, view projection.View) ([]projection.Object, error)
	Create(ctx context.Context, arg domain.CreateSubAccountParams) (projection.Object, error)
	Update(ctx context.Context, id int32, arg domain.UpdateSubAccountParams) (projection.Object, error)
	Delete(ctx context.Context, id int32) (projection.Object, error)
}

// Handler facilitates sub-account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns sub-account handler.
func NewHandler(ss Service) Handler {
	return Handler{service: ss}
}

type data struct {
	SubAccount projection.Object `json:"subAccount"`
}

type dataSubAccounts struct {
	SubAccounts []projection.Object `json:"subAccounts"`
}

type idRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

type queryRequest struct {
	Relations string `form:"relations" binding:"relations"`
	View      string `form:"view"`
}

// List handles http request to list sub-accounts.
func (h *Handler) List(gctx *gin.Context) {
	h.list(gctx, nil, projection.ViewDefault)
}

// Get handles http request to get sub-account.
func (h *Handler) Get(gctx *gin.Context) {
	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		web.BindFailed(gctx, err)
		return
	}

	h.get(gctx, req.ID, nil, projection.ViewDefault)
}

// Query handles http request to list sub-accounts with caller-chosen relations and view.
func (h *Handler) Query(gctx *gin.Context) {
	var req queryRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		web.BindFailed(gctx, err)
		return
	}

	view, err := projection.ParseView(entity, req.View)
	if err != nil {
		web.Fail(gctx, err)
		return
	}

	h.list(gctx, web.SplitList(req.Relations), view)
}

// QueryOne handles http request to get a sub-account with caller-chosen relations and view.
func (h *Handler) QueryOne(gctx *gin.Context) {
	var (
		uri idRequest
		req queryRequest
	)

	if err := gctx.ShouldBindUri(&uri); err != nil {
		web.BindFailed(gctx, err)
		return
	}

	if err := gctx.ShouldBindQuery(&req); err != nil {
		web.BindFailed(gctx, err)
		return
	}

	view, err := projection.ParseView(entity, req.View)
	if err != nil {
		web.Fail(gctx, err)
		return
	}

	h.get(gctx, uri.ID, web.SplitList(req.Relations), view)
}

func (h *Handler) list(gctx *gin.Context, relations []string, view projection.View) {
	subAccounts, err := h.service.GetAll(gctx.Request.Context(), relations, view)
	if err != nil {
		web.Fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataSubAccounts{subAccounts}})
}

func (h *Handler) get(gctx *gin.Context, id int32, relations []string, view projection.View) {
	subAccount, err := h.service.GetOne(gctx.Request.Context(), id, relations, view)
	if err != nil {
		web.Fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{subAccount}})
}

type createRequest struct {
	Number             int32  `json:"number" binding:"required,min=1"`
	Title              string `json:"title" binding:"required,max=255"`
	Description        string `json:"description" binding:"max=1024"`
	SyntheticAccountID int32  `json:"syntheticAccountId" binding:"required,min=1"`
}

// Create handles http request to create sub-account.
func (h *Handler) Create(gctx *gin.Context) {
	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		web.BindFailed(gctx, err)
		return
	}

	arg := domain.CreateSubAccountParams{
		Number:             req.Number,
		Title:              req.Title,
		Description:        req.Description,
		SyntheticAccountID: req.SyntheticAccountID,
	}

	subAccount, err := h.service.Create(gctx.Request.Context(), arg)
	if err != nil {
		web.Fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: data{subAccount}})
}

type updateRequest struct {
	Number             *int32  `json:"number" binding:"omitempty,min=1"`
	Title              *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description        *string `json:"description" binding:"omitempty,max=1024"`
	SyntheticAccountID *int32  `json:"syntheticAccountId" binding:"omitempty,min=1"`
}

// Update handles http request to change sub-account fields.
func (h *Handler) Update(gctx *gin.Context) {
	var (
		uri idRequest
		req updateRequest
	)

	if err := gctx.ShouldBindUri(&uri); err != nil {
		web.BindFailed(gctx, err)
		return
	}

	if err := gctx.ShouldBindJSON(&req); err != nil {
		web.BindFailed(gctx, err)
		return
	}

	arg := domain.UpdateSubAccountParams{
		Number:             req.Number,
		Title:              req.Title,
		Description:        req.Description,
		SyntheticAccountID: req.SyntheticAccountID,
	}

	subAccount, err := h.service.Update(gctx.Request.Context(), uri.ID, arg)
	if err != nil {
		web.Fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{subAccount}})
}

// Delete handles http request to delete sub-account.
func (h *Handler) Delete(gctx *gin.Context) {
	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		web.BindFailed(gctx, err)
		return
	}

	subAccount, err := h.service.Delete(gctx.Request.Context(), uri.ID)
	if err != nil {
		web.Fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{subAccount}})
}
