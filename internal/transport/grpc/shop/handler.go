package shop

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	shopv1 "github.com/light-bringer/backoffice-service/api/shop/v1"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/login"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/queries/get_cart"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/add_to_cart"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/checkout"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/remove_cart_item"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/update_cart_item"
	"github.com/light-bringer/backoffice-service/internal/pkg/apperr"
	"github.com/light-bringer/backoffice-service/internal/pkg/session"
)

// CartHandler implements shopv1.CartServiceServer.
// It's a thin coordinator that delegates to use cases and queries.
type CartHandler struct {
	shopv1.UnimplementedCartServiceServer

	addToCart      *add_to_cart.Interactor
	updateCartItem *update_cart_item.Interactor
	removeCartItem *remove_cart_item.Interactor
	checkout       *checkout.Interactor

	getCart *get_cart.Query
}

// NewCartHandler creates a new gRPC cart handler.
func NewCartHandler(
	addToCart *add_to_cart.Interactor,
	updateCartItem *update_cart_item.Interactor,
	removeCartItem *remove_cart_item.Interactor,
	checkout *checkout.Interactor,
	getCart *get_cart.Query,
) *CartHandler {
	return &CartHandler{
		addToCart:      addToCart,
		updateCartItem: updateCartItem,
		removeCartItem: removeCartItem,
		checkout:       checkout,
		getCart:        getCart,
	}
}

// AddToCart reserves stock into the caller's cart.
func (h *CartHandler) AddToCart(ctx context.Context, req *shopv1.AddToCartRequest) (*shopv1.AddToCartReply, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if req.ProductID == "" {
		return nil, status.Error(codes.InvalidArgument, "product_id is required")
	}

	resp, err := h.addToCart.Execute(ctx, &add_to_cart.Request{
		UserID:    p.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return &shopv1.AddToCartReply{
		CartID:    resp.CartID,
		ItemID:    resp.ItemID,
		Quantity:  resp.Quantity,
		StockLeft: resp.StockLeft,
	}, nil
}

// UpdateCartItem sets a line's quantity.
func (h *CartHandler) UpdateCartItem(ctx context.Context, req *shopv1.UpdateCartItemRequest) (*shopv1.UpdateCartItemReply, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if req.ItemID == "" {
		return nil, status.Error(codes.InvalidArgument, "item_id is required")
	}

	resp, err := h.updateCartItem.Execute(ctx, &update_cart_item.Request{
		UserID:   p.UserID,
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
	})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return &shopv1.UpdateCartItemReply{
		ItemID:    resp.ItemID,
		Quantity:  resp.Quantity,
		StockLeft: resp.StockLeft,
	}, nil
}

// RemoveCartItem deletes a line and returns its stock.
func (h *CartHandler) RemoveCartItem(ctx context.Context, req *shopv1.RemoveCartItemRequest) (*shopv1.RemoveCartItemReply, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if req.ItemID == "" {
		return nil, status.Error(codes.InvalidArgument, "item_id is required")
	}

	if err := h.removeCartItem.Execute(ctx, &remove_cart_item.Request{UserID: p.UserID, ItemID: req.ItemID}); err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return &shopv1.RemoveCartItemReply{}, nil
}

// GetCart returns the caller's cart.
func (h *CartHandler) GetCart(ctx context.Context, _ *shopv1.GetCartRequest) (*shopv1.Cart, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	cart, err := h.getCart.Execute(ctx, &get_cart.Request{UserID: p.UserID})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return cartToProto(cart), nil
}

// Checkout turns the caller's cart into an order.
func (h *CartHandler) Checkout(ctx context.Context, _ *shopv1.CheckoutRequest) (*shopv1.Order, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	order, err := h.checkout.Execute(ctx, &checkout.Request{UserID: p.UserID})
	if err != nil {
		if isKnown(err) {
			return nil, mapDomainErrorToGRPC(err)
		}
		return nil, status.Error(codes.Internal, "failed to process order")
	}
	return orderToProto(order), nil
}

// AuthHandler implements shopv1.AuthServiceServer.
type AuthHandler struct {
	shopv1.UnimplementedAuthServiceServer

	login *login.Interactor
}

// NewAuthHandler creates a new gRPC auth handler.
func NewAuthHandler(login *login.Interactor) *AuthHandler {
	return &AuthHandler{login: login}
}

// Login exchanges credentials for a session token.
func (h *AuthHandler) Login(ctx context.Context, req *shopv1.LoginRequest) (*shopv1.LoginReply, error) {
	resp, err := h.login.Execute(ctx, &login.Request{Username: req.Username, Password: req.Password})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return &shopv1.LoginReply{
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt,
		UserID:    resp.UserID,
		Username:  resp.Username,
		Role:      resp.Role.String(),
	}, nil
}

func caller(ctx context.Context) (*session.Principal, error) {
	p, ok := session.FromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "not authenticated")
	}
	return p, nil
}

func isKnown(err error) bool {
	for _, kind := range []error{
		apperr.ErrInvalidArgument, apperr.ErrNotFound, apperr.ErrFailedPrecondition, apperr.ErrConflict,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
