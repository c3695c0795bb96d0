// Package syntheticdelivery manages delivery layer of synthetic accounts.
package syntheticdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/projection"
	"github.com/go-petr/pet-ledger/pkg/web"
)

const entity = domain.EntitySyntheticAccount

// Service provides service layer interface needed by synthetic account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package syntheticdelivery
type Service interface {
	GetOne(ctx context.Context, id int32, relations []string, view projection.View) (projection.Object, error)
	GetAll(ctx context.Context, relations []string, view projection.View) ([]projection.Object, error)
	Create(ctx context.Context, arg domain.CreateSyntheticAccountParams) (projection.Object, error)
	Update(ctx context.Context, id int32, arg domain.UpdateSyntheticAccountParams) (projection.Object, error)
	Delete(ctx context.Context, id int32) (projection.Object, error)
}

// Handler facilitates synthetic account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns synthetic account handler.
func NewHandler(ss Service) Handler {
	return Handler{service: ss}
}

type data struct {
	SyntheticAccount projection.Object `json:"syntheticAccount"`
}

type dataSyntheticAccounts struct {
	SyntheticAccounts []projection.Object `json:"syntheticAccounts"`
}

type idRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

type queryRequest struct {
	Relations string `form:"relations" binding:"relations"`
	View      string `form:"view"`
}

// List returns a handler that lists every synthetic account in view.
func (h *Handler) List(view projection.View) gin.HandlerFunc {
	relations := projection.RelationNames(entity, view)

	return func(gctx *gin.Context) {
		h.list(gctx, relations, view)
	}
}

// Get returns a handler that serves the synthetic account with the uri id in view.
func (h *Handler) Get(view projection.View) gin.HandlerFunc {
	relations := projection.RelationNames(entity, view)

	return func(gctx *gin.Context) {
		var req idRequest
		if err := gctx.ShouldBindUri(&req); err != nil {
			web.BindFailed(gctx, err)
			return
		}

		h.get(gctx, req.ID, relations, view)
	}
}

// Query handles http request to list synthetic accounts with caller-chosen relations and view.
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

// QueryOne handles http request to get a synthetic account with caller-chosen relations and view.
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
	accounts, err := h.service.GetAll(gctx.Request.Context(), relations, view)
	if err != nil {
		web.Fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataSyntheticAccounts{accounts}})
}

func (h *Handler) get(gctx *gin.Context, id int32, relations []string, view projection.View) {
	account, err := h.service.GetOne(gctx.Request.Context(), id, relations, view)
	if err != nil {
		web.Fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{account}})
}

type createRequest struct {
	Number        int32   `json:"number" binding:"required,min=1"`
	Title         string  `json:"title" binding:"required,max=255"`
	Description   string  `json:"description" binding:"max=1024"`
	AccountID     int32   `json:"accountId" binding:"required,min=1"`
	DebitPeerIDs  []int32 `json:"debitPeerIds"`
	CreditPeerIDs []int32 `json:"creditPeerIds"`
}

// Create handles http request to create synthetic account together with its links.
func (h *Handler) Create(gctx *gin.Context) {
	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		web.BindFailed(gctx, err)
		return
	}

	arg := domain.CreateSyntheticAccountParams{
		Number:        req.Number,
		Title:         req.Title,
		Description:   req.Description,
		AccountID:     req.AccountID,
		DebitPeerIDs:  req.DebitPeerIDs,
		CreditPeerIDs: req.CreditPeerIDs,
	}

	account, err := h.service.Create(gctx.Request.Context(), arg)
	if err != nil {
		web.Fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: data{account}})
}

type updateRequest struct {
	Number        *int32   `json:"number" binding:"omitempty,min=1"`
	Title         *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Description   *string  `json:"description" binding:"omitempty,max=1024"`
	AccountID     *int32   `json:"accountId" binding:"omitempty,min=1"`
	DebitPeerIDs  *[]int32 `json:"debitPeerIds"`
	CreditPeerIDs *[]int32 `json:"creditPeerIds"`
}

// Update handles http request to change synthetic account fields.
//
// A supplied peer list replaces every link on its side, an omitted one leaves the side untouched.
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

	arg := domain.UpdateSyntheticAccountParams{
		Number:        req.Number,
		Title:         req.Title,
		Description:   req.Description,
		AccountID:     req.AccountID,
		DebitPeerIDs:  req.DebitPeerIDs,
		CreditPeerIDs: req.CreditPeerIDs,
	}

	account, err := h.service.Update(gctx.Request.Context(), uri.ID, arg)
	if err != nil {
		web.Fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{account}})
}

// Delete handles http request to delete synthetic account with its sub-accounts and links.
func (h *Handler) Delete(gctx *gin.Context) {
	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		web.BindFailed(gctx, err)
		return
	}

	account, err := h.service.Delete(gctx.Request.Context(), uri.ID)
	if err != nil {
		web.Fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{account}})
}
