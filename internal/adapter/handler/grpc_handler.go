package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/cart-manager/internal/core/domain"
	"github.com/rl1809/cart-manager/internal/core/service"
)

type GRPCHandler struct {
	cartManager *service.CartManager
}

var _ CartServiceServer = (*GRPCHandler)(nil)

func NewGRPCHandler(cartManager *service.CartManager) *GRPCHandler {
	return &GRPCHandler{cartManager: cartManager}
}

func (h *GRPCHandler) GetCart(ctx context.Context, req *GetCartRequest) (*CartResponse, error) {
	return h.cartResponse(), nil
}

func (h *GRPCHandler) AddProduct(ctx context.Context, req *ProductRequest) (*OperationResponse, error) {
	if req.GetProductID() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "product_id must be positive")
	}
	return h.operationResponse(h.cartManager.AddProduct(ctx, int(req.GetProductID()))), nil
}

func (h *GRPCHandler) RemoveProduct(ctx context.Context, req *ProductRequest) (*OperationResponse, error) {
	if req.GetProductID() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "product_id must be positive")
	}
	return h.operationResponse(h.cartManager.RemoveProduct(ctx, int(req.GetProductID()))), nil
}

func (h *GRPCHandler) UpdateProductAmount(ctx context.Context, req *UpdateAmountRequest) (*OperationResponse, error) {
	if req.GetProductID() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "product_id must be positive")
	}
	out := h.cartManager.UpdateProductAmount(ctx, int(req.GetProductID()), int(req.GetAmount()))
	return h.operationResponse(out), nil
}

func (h *GRPCHandler) operationResponse(out domain.Outcome) *OperationResponse {
	return &OperationResponse{
		Success: !out.Failed(),
		Message: outcomeMessage(out),
		Reason:  string(out.Reason),
		Cart:    h.cartResponse(),
	}
}

func (h *GRPCHandler) cartResponse() *CartResponse {
	cart := h.cartManager.Cart()
	return &CartResponse{
		Items: cart,
		Count: int32(cart.Count()),
		Total: cart.Total().StringFixed(2),
	}
}
