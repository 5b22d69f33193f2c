// Package http exposes the fulfillment pipeline over REST. The adapter
// translates JSON payloads into commands and queries, and maps the domain
// error taxonomy onto HTTP status codes. Authentication happens upstream at
// the API gateway; the acting account arrives in trusted headers.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/preparation"
	"fulfillment/internal/core/domain/model/quote"
	"fulfillment/internal/pkg/errs"
)

// Gateway-provided identity headers.
const (
	headerUserID    = "X-User-Id"
	headerUserEmail = "X-User-Email"
	headerUserRole  = "X-User-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createQuote  commands.CreateQuoteCommandHandler
	vendorReview commands.VendorReviewQuoteCommandHandler
	adminReview  commands.AdminReviewQuoteCommandHandler
	convertQuote commands.ConvertQuoteCommandHandler

	createOrder commands.CreateOrderCommandHandler
	updateOrder commands.UpdateOrderCommandHandler
	cancelOrder commands.CancelOrderCommandHandler

	openPreparation commands.OpenPreparationCommandHandler
	recordProgress  commands.RecordProgressCommandHandler
	dispatchOrder   commands.DispatchOrderCommandHandler
	reassign        commands.ReassignPreparationCommandHandler

	getPreparation   queries.GetPreparationQueryHandler
	getWarehouseLoad queries.GetWarehouseLoadQueryHandler
	suggestRebalance queries.SuggestRebalancingQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createQuote commands.CreateQuoteCommandHandler,
	vendorReview commands.VendorReviewQuoteCommandHandler,
	adminReview commands.AdminReviewQuoteCommandHandler,
	convertQuote commands.ConvertQuoteCommandHandler,
	createOrder commands.CreateOrderCommandHandler,
	updateOrder commands.UpdateOrderCommandHandler,
	cancelOrder commands.CancelOrderCommandHandler,
	openPreparation commands.OpenPreparationCommandHandler,
	recordProgress commands.RecordProgressCommandHandler,
	dispatchOrder commands.DispatchOrderCommandHandler,
	reassign commands.ReassignPreparationCommandHandler,
	getPreparation queries.GetPreparationQueryHandler,
	getWarehouseLoad queries.GetWarehouseLoadQueryHandler,
	suggestRebalance queries.SuggestRebalancingQueryHandler,
) *Server {
	return &Server{
		createQuote:      createQuote,
		vendorReview:     vendorReview,
		adminReview:      adminReview,
		convertQuote:     convertQuote,
		createOrder:      createOrder,
		updateOrder:      updateOrder,
		cancelOrder:      cancelOrder,
		openPreparation:  openPreparation,
		recordProgress:   recordProgress,
		dispatchOrder:    dispatchOrder,
		reassign:         reassign,
		getPreparation:   getPreparation,
		getWarehouseLoad: getWarehouseLoad,
		suggestRebalance: suggestRebalance,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/quotes", s.CreateQuote)
	v1.POST("/quotes/:id/vendor-review", s.VendorReviewQuote)
	v1.POST("/quotes/:id/admin-review", s.AdminReviewQuote)
	v1.POST("/quotes/:id/convert", s.ConvertQuote)

	v1.POST("/orders", s.CreateOrder)
	v1.PATCH("/orders/:id", s.UpdateOrder)
	v1.DELETE("/orders/:id", s.CancelOrder)
	v1.GET("/orders/:id/preparation", s.GetPreparation)

	v1.POST("/warehouse/orders/:id/preparation", s.OpenPreparation)
	v1.PATCH("/warehouse/orders/:id/preparation", s.RecordProgress)
	v1.POST("/warehouse/orders/:id/dispatch", s.DispatchOrder)
	v1.POST("/warehouse/orders/:id/reassign", s.ReassignPreparation)
	v1.GET("/warehouse/load", s.GetWarehouseLoad)
	v1.GET("/warehouse/rebalancing", s.SuggestRebalancing)
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ItemRequest is one product line in quote and order payloads.
type ItemRequest struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	ProductCode string  `json:"productCode"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Subtotal    float64 `json:"subtotal"`
	Notes       string  `json:"notes"`
}

// AddressRequest is the shipping address payload.
type AddressRequest struct {
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
	ContactName string `json:"contactName"`
}

// CreateQuoteRequest is the payload for POST /quotes.
type CreateQuoteRequest struct {
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	CustomerPhone string        `json:"customerPhone"`
	Organization  string        `json:"organization"`
	TaxID         string        `json:"taxId"`
	CustomerID    string        `json:"customerId"`
	Items         []ItemRequest `json:"items"`
	Message       string        `json:"message"`
}

// CreateQuote handles POST /api/v1/quotes.
func (s *Server) CreateQuote(ctx echo.Context) error {
	var req CreateQuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customer := quote.CustomerInfo{
		Name:         req.CustomerName,
		Email:        req.CustomerEmail,
		Phone:        req.CustomerPhone,
		Organization: req.Organization,
		TaxID:        req.TaxID,
	}
	// A logged-in requester is linked to the quote; anonymous requests are
	// accepted and matched to the customer registry by email.
	if actor, err := actorFromHeaders(ctx); err == nil {
		id := actor.ID
		customer.UserID = &id
	}
	if req.CustomerID != "" {
		customerID, err := kernel.UUIDFromString(req.CustomerID)
		if err != nil {
			return badRequest(ctx, "Invalid customerId")
		}
		customer.CustomerID = &customerID
	}

	quoteID := kernel.NewUUID()
	cmd, err := commands.NewCreateQuoteCommand(quoteID, customer, quoteItems(req.Items), req.Message)
	if err != nil {
		return domainError(ctx, err)
	}
	if err = s.createQuote.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": quoteID.String()})
}

// ReviewRequest is the payload for both review stages.
type ReviewRequest struct {
	Approved bool   `json:"approved"`
	Notes    string `json:"notes"`
	Reason   string `json:"reason"`
}

// VendorReviewQuote handles POST /api/v1/quotes/:id/vendor-review.
func (s *Server) VendorReviewQuote(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}
	quoteID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid quote id")
	}

	var req ReviewRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewVendorReviewQuoteCommand(quoteID, actor, req.Approved, req.Notes, req.Reason)
	if err != nil {
		return domainError(ctx, err)
	}
	if err = s.vendorReview.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AdminReviewQuote handles POST /api/v1/quotes/:id/admin-review.
func (s *Server) AdminReviewQuote(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}
	quoteID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid quote id")
	}

	var req ReviewRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAdminReviewQuoteCommand(quoteID, actor, req.Approved, req.Notes, req.Reason)
	if err != nil {
		return domainError(ctx, err)
	}
	if err = s.adminReview.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ConvertQuoteRequest is the payload for POST /quotes/:id/convert.
type ConvertQuoteRequest struct {
	PaymentMethod   string         `json:"paymentMethod"`
	ShippingAddress AddressRequest `json:"shippingAddress"`
	ShippingMethod  string         `json:"shippingMethod"`
	Notes           string         `json:"notes"`
}

// ConvertQuote handles POST /api/v1/quotes/:id/convert.
func (s *Server) ConvertQuote(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}
	quoteID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid quote id")
	}

	var req ConvertQuoteRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewConvertQuoteCommand(quoteID, orderID, actor,
		order.PaymentMethod(req.PaymentMethod), shippingAddress(req.ShippingAddress),
		req.ShippingMethod, req.Notes)
	if err != nil {
		return domainError(ctx, err)
	}
	if err = s.convertQuote.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, map[string]string{"orderId": orderID.String()})
}

// CreateOrderRequest is the payload for POST /orders.
type CreateOrderRequest struct {
	CustomerName   string         `json:"customerName"`
	CustomerEmail  string         `json:"customerEmail"`
	CustomerPhone  string         `json:"customerPhone"`
	Organization   string         `json:"organization"`
	Items          []ItemRequest  `json:"items"`
	Subtotal       float64        `json:"subtotal"`
	Discount       float64        `json:"discount"`
	Tax            float64        `json:"tax"`
	ShippingCost   float64        `json:"shippingCost"`
	Total          float64        `json:"total"`
	PaymentMethod  string         `json:"paymentMethod"`
	Address        AddressRequest `json:"shippingAddress"`
	ShippingMethod string         `json:"shippingMethod"`
	Notes          string         `json:"notes"`
}

// CreateOrder handles POST /api/v1/orders - direct checkout without a quote.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, actor,
		req.CustomerName, req.CustomerEmail, req.CustomerPhone, req.Organization,
		orderItems(req.Items),
		order.Totals{
			Subtotal:     req.Subtotal,
			Discount:     req.Discount,
			Tax:          req.Tax,
			ShippingCost: req.ShippingCost,
			Total:        req.Total,
		},
		order.PaymentMethod(req.PaymentMethod), shippingAddress(req.Address),
		req.ShippingMethod, req.Notes)
	if err != nil {
		return domainError(ctx, err)
	}
	if err = s.createOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// UpdateOrderRequest is the payload for PATCH /orders/:id. All fields are
// optional; absent fields leave the order untouched.
type UpdateOrderRequest struct {
	Status          *string `json:"status"`
	PaymentStatus   *string `json:"paymentStatus"`
	PaymentMethod   *string `json:"paymentMethod"`
	TrackingNumber  *string `json:"trackingNumber"`
	InternalNotes   *string `json:"internalNotes"`
	ConfirmDelivery bool    `json:"confirmDelivery"`
	Origin          string  `json:"origin"`
}

// UpdateOrder handles PATCH /api/v1/orders/:id.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req UpdateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	patch := commands.OrderPatch{
		TrackingNumber:  req.TrackingNumber,
		InternalNotes:   req.InternalNotes,
		ConfirmDelivery: req.ConfirmDelivery,
	}
	if req.Status != nil {
		status := order.Status(*req.Status)
		patch.Status = &status
	}
	if req.PaymentStatus != nil {
		paymentStatus := order.PaymentStatus(*req.PaymentStatus)
		patch.PaymentStatus = &paymentStatus
	}
	if req.PaymentMethod != nil {
		paymentMethod := order.PaymentMethod(*req.PaymentMethod)
		patch.PaymentMethod = &paymentMethod
	}

	origin := req.Origin
	if origin == "" {
		origin = "web"
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, actor, origin, patch)
	if err != nil {
		return domainError(ctx, err)
	}
	if err = s.updateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrderRequest is the payload for DELETE /orders/:id.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder handles DELETE /api/v1/orders/:id.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req CancelOrderRequest
	_ = ctx.Bind(&req) // body optional

	cmd, err := commands.NewCancelOrderCommand(orderID, actor, "web", req.Reason)
	if err != nil {
		return domainError(ctx, err)
	}
	if err = s.cancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// OpenPreparationRequest is the payload for POST /warehouse/orders/:id/preparation.
type OpenPreparationRequest struct {
	OperatorID string `json:"operatorId"`
	Notes      string `json:"notes"`
}

// OpenPreparation handles POST /api/v1/warehouse/orders/:id/preparation.
func (s *Server) OpenPreparation(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req OpenPreparationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var operatorID *kernel.UUID
	if req.OperatorID != "" {
		id, idErr := kernel.UUIDFromString(req.OperatorID)
		if idErr != nil {
			return badRequest(ctx, "Invalid operatorId")
		}
		operatorID = &id
	}

	cmd, err := commands.NewOpenPreparationCommand(orderID, actor, operatorID, req.Notes)
	if err != nil {
		return domainError(ctx, err)
	}
	if err = s.openPreparation.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusCreated)
}

// ProgressItemRequest is one tracker line in a progress report.
type ProgressItemRequest struct {
	ProductID        string `json:"productId"`
	ProductName      string `json:"productName"`
	QuantityOrdered  int    `json:"quantityOrdered"`
	QuantityPrepared int    `json:"quantityPrepared"`
	IsPrepared       bool   `json:"isPrepared"`
	Notes            string `json:"notes"`
}

// RecordProgressRequest is the payload for PATCH /warehouse/orders/:id/preparation.
type RecordProgressRequest struct {
	Items []ProgressItemRequest `json:"items"`
	Notes string                `json:"notes"`
}

// RecordProgress handles PATCH /api/v1/warehouse/orders/:id/preparation.
func (s *Server) RecordProgress(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req RecordProgressRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]preparation.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, preparation.Item{
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			QuantityOrdered:  it.QuantityOrdered,
			QuantityPrepared: it.QuantityPrepared,
			IsPrepared:       it.IsPrepared,
			Notes:            it.Notes,
		})
	}

	cmd, err := commands.NewRecordProgressCommand(orderID, actor, items, req.Notes)
	if err != nil {
		return domainError(ctx, err)
	}
	if err = s.recordProgress.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DispatchOrderRequest is the payload for POST /warehouse/orders/:id/dispatch.
type DispatchOrderRequest struct {
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"trackingNumber"`
	Notes          string `json:"notes"`
}

// DispatchOrder handles POST /api/v1/warehouse/orders/:id/dispatch.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req DispatchOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID, actor, req.Carrier, req.TrackingNumber, req.Notes)
	if err != nil {
		return domainError(ctx, err)
	}
	if err = s.dispatchOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ReassignRequest is the payload for POST /warehouse/orders/:id/reassign.
type ReassignRequest struct {
	OperatorID string `json:"operatorId"`
	Reason     string `json:"reason"`
}

// ReassignPreparation handles POST /api/v1/warehouse/orders/:id/reassign.
func (s *Server) ReassignPreparation(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req ReassignRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var targetID *kernel.UUID
	if req.OperatorID != "" {
		id, idErr := kernel.UUIDFromString(req.OperatorID)
		if idErr != nil {
			return badRequest(ctx, "Invalid operatorId")
		}
		targetID = &id
	}

	cmd, err := commands.NewReassignPreparationCommand(orderID, actor, targetID, req.Reason)
	if err != nil {
		return domainError(ctx, err)
	}
	if err = s.reassign.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetPreparation handles GET /api/v1/orders/:id/preparation.
func (s *Server) GetPreparation(ctx echo.Context) error {
	if _, err := actorFromHeaders(ctx); err != nil {
		return unauthorized(ctx)
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetPreparationQuery(orderID)
	if err != nil {
		return domainError(ctx, err)
	}
	resp, err := s.getPreparation.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, preparationResponse(resp))
}

// GetWarehouseLoad handles GET /api/v1/warehouse/load.
func (s *Server) GetWarehouseLoad(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}
	if !actor.Role.IsElevated() && actor.Role != account.RoleVendedor && actor.Role != account.RoleBodega {
		return forbidden(ctx)
	}

	loads, err := s.getWarehouseLoad.Handle(ctx.Request().Context(), queries.NewGetWarehouseLoadQuery())
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]OperatorLoadResponse, 0, len(loads))
	for _, l := range loads {
		response = append(response, operatorLoadResponse(l))
	}
	return ctx.JSON(http.StatusOK, response)
}

// SuggestRebalancing handles GET /api/v1/warehouse/rebalancing.
func (s *Server) SuggestRebalancing(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}
	if !actor.Role.IsElevated() {
		return forbidden(ctx)
	}

	report, err := s.suggestRebalance.Handle(ctx.Request().Context(), queries.NewSuggestRebalancingQuery())
	if err != nil {
		return domainError(ctx, err)
	}

	loads := make([]OperatorLoadResponse, 0, len(report.Loads))
	for _, l := range report.Loads {
		loads = append(loads, operatorLoadResponse(l))
	}
	return ctx.JSON(http.StatusOK, RebalancingResponse{
		NeedsRebalancing: report.NeedsRebalancing,
		MaxLoad:          report.MaxLoad,
		MinLoad:          report.MinLoad,
		Difference:       report.Difference,
		BusiestOperator:  report.BusiestOperator,
		IdlestOperator:   report.IdlestOperator,
		Suggestion:       report.Suggestion,
		Loads:            loads,
	})
}

// OperatorLoadResponse is one operator's workload row.
type OperatorLoadResponse struct {
	OperatorID           string  `json:"operatorId"`
	OperatorName         string  `json:"operatorName"`
	ActiveOrders         int     `json:"activeOrders"`
	TotalItems           int     `json:"totalItems"`
	EstimatedMinutes     int     `json:"estimatedMinutes"`
	AverageItemsPerOrder float64 `json:"averageItemsPerOrder"`
	LoadScore            float64 `json:"loadScore"`
}

// RebalancingResponse is the advisory rebalancing report.
type RebalancingResponse struct {
	NeedsRebalancing bool                   `json:"needsRebalancing"`
	MaxLoad          float64                `json:"maxLoad"`
	MinLoad          float64                `json:"minLoad"`
	Difference       float64                `json:"difference"`
	BusiestOperator  string                 `json:"busiestOperator"`
	IdlestOperator   string                 `json:"idlestOperator"`
	Suggestion       string                 `json:"suggestion,omitempty"`
	Loads            []OperatorLoadResponse `json:"loads"`
}

// PreparationResponse is the tracker read model body.
type PreparationResponse struct {
	ID               string                `json:"id"`
	OrderID          string                `json:"orderId"`
	OrderNumber      string                `json:"orderNumber"`
	Status           string                `json:"status"`
	OperatorID       string                `json:"operatorId,omitempty"`
	OperatorName     string                `json:"operatorName,omitempty"`
	Items            []ProgressItemRequest `json:"items"`
	TotalItems       int                   `json:"totalItems"`
	PreparedItems    int                   `json:"preparedItems"`
	Progress         int                   `json:"progress"`
	EstimatedMinutes int                   `json:"estimatedMinutes"`
	Notes            string                `json:"notes,omitempty"`
	Carrier          string                `json:"carrier,omitempty"`
	TrackingNumber   string                `json:"trackingNumber,omitempty"`
}

func preparationResponse(resp queries.GetPreparationQueryResponse) PreparationResponse {
	items := make([]ProgressItemRequest, 0, len(resp.Items))
	for _, it := range resp.Items {
		items = append(items, ProgressItemRequest{
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			QuantityOrdered:  it.QuantityOrdered,
			QuantityPrepared: it.QuantityPrepared,
			IsPrepared:       it.IsPrepared,
			Notes:            it.Notes,
		})
	}

	out := PreparationResponse{
		ID:               resp.ID.String(),
		OrderID:          resp.OrderID.String(),
		OrderNumber:      resp.OrderNumber,
		Status:           resp.Status,
		OperatorName:     resp.OperatorName,
		Items:            items,
		TotalItems:       resp.TotalItems,
		PreparedItems:    resp.PreparedItems,
		Progress:         resp.Progress,
		EstimatedMinutes: resp.EstimatedMinutes,
		Notes:            resp.Notes,
		Carrier:          resp.Carrier,
		TrackingNumber:   resp.TrackingNumber,
	}
	if resp.OperatorID != nil {
		out.OperatorID = resp.OperatorID.String()
	}
	return out
}

func operatorLoadResponse(l queries.GetWarehouseLoadQueryResponse) OperatorLoadResponse {
	return OperatorLoadResponse{
		OperatorID:           l.OperatorID.String(),
		OperatorName:         l.OperatorName,
		ActiveOrders:         l.ActiveOrders,
		TotalItems:           l.TotalItems,
		EstimatedMinutes:     l.EstimatedMinutes,
		AverageItemsPerOrder: l.AverageItemsPerOrder,
		LoadScore:            l.LoadScore,
	}
}

func quoteItems(items []ItemRequest) []quote.Item {
	out := make([]quote.Item, 0, len(items))
	for _, it := range items {
		out = append(out, quote.Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductCode: it.ProductCode,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
			Notes:       it.Notes,
		})
	}
	return out
}

func orderItems(items []ItemRequest) []order.Item {
	out := make([]order.Item, 0, len(items))
	for _, it := range items {
		out = append(out, order.Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductCode: it.ProductCode,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
			Notes:       it.Notes,
		})
	}
	return out
}

func shippingAddress(a AddressRequest) order.ShippingAddress {
	return order.ShippingAddress{
		Street:      a.Street,
		City:        a.City,
		State:       a.State,
		ZipCode:     a.ZipCode,
		Country:     a.Country,
		Phone:       a.Phone,
		ContactName: a.ContactName,
	}
}

// actorFromHeaders builds the acting account from the gateway identity headers.
func actorFromHeaders(ctx echo.Context) (commands.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerUserID))
	if err != nil {
		return commands.Actor{}, err
	}
	return commands.NewActor(id,
		ctx.Request().Header.Get(headerUserEmail),
		account.Role(ctx.Request().Header.Get(headerUserRole)))
}

// domainError maps the domain error taxonomy onto HTTP status codes.
func domainError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrInvalidState):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrUnprocessable):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrUnavailable):
		code = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		code = http.StatusBadRequest
	}
	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: message})
}

func unauthorized(ctx echo.Context) error {
	return ctx.JSON(http.StatusUnauthorized, ErrorResponse{Code: http.StatusUnauthorized, Message: "Missing identity headers"})
}

func forbidden(ctx echo.Context) error {
	return ctx.JSON(http.StatusForbidden, ErrorResponse{Code: http.StatusForbidden, Message: "Insufficient role"})
}
