package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"

	"github.com/rl1809/cart-manager/internal/core/domain"
)

// Messages of cart.v1.CartService travel as JSON under the "json" content
// subtype; there is no protobuf schema.

const (
	cartServiceName = "cart.v1.CartService"
	CodecName       = "json"
)

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return CodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type GetCartRequest struct{}

type ProductRequest struct {
	ProductID int32 `json:"product_id"`
}

func (x *ProductRequest) GetProductID() int32 {
	if x != nil {
		return x.ProductID
	}
	return 0
}

type UpdateAmountRequest struct {
	ProductID int32 `json:"product_id"`
	Amount    int32 `json:"amount"`
}

func (x *UpdateAmountRequest) GetProductID() int32 {
	if x != nil {
		return x.ProductID
	}
	return 0
}

func (x *UpdateAmountRequest) GetAmount() int32 {
	if x != nil {
		return x.Amount
	}
	return 0
}

type CartResponse struct {
	Items []domain.LineItem `json:"items"`
	Count int32             `json:"count"`
	Total string            `json:"total"`
}

type OperationResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Reason  string        `json:"reason,omitempty"`
	Cart    *CartResponse `json:"cart"`
}

type CartServiceServer interface {
	GetCart(context.Context, *GetCartRequest) (*CartResponse, error)
	AddProduct(context.Context, *ProductRequest) (*OperationResponse, error)
	RemoveProduct(context.Context, *ProductRequest) (*OperationResponse, error)
	UpdateProductAmount(context.Context, *UpdateAmountRequest) (*OperationResponse, error)
}

func RegisterCartServiceServer(s grpc.ServiceRegistrar, srv CartServiceServer) {
	s.RegisterService(&CartServiceDesc, srv)
}

var CartServiceDesc = grpc.ServiceDesc{
	ServiceName: cartServiceName,
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetCart",
			Handler:    unaryHandler("GetCart", CartServiceServer.GetCart),
		},
		{
			MethodName: "AddProduct",
			Handler:    unaryHandler("AddProduct", CartServiceServer.AddProduct),
		},
		{
			MethodName: "RemoveProduct",
			Handler:    unaryHandler("RemoveProduct", CartServiceServer.RemoveProduct),
		},
		{
			MethodName: "UpdateProductAmount",
			Handler:    unaryHandler("UpdateProductAmount", CartServiceServer.UpdateProductAmount),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cart/v1/cart.proto",
}

func unaryHandler[Req, Resp any](method string, call func(CartServiceServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + cartServiceName + "/" + method

	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CartServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CartServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CartServiceClient calls cart.v1.CartService using the JSON codec.
type CartServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCartServiceClient(cc grpc.ClientConnInterface) *CartServiceClient {
	return &CartServiceClient{cc: cc}
}

func (c *CartServiceClient) GetCart(ctx context.Context, in *GetCartRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	out := new(CartResponse)
	if err := c.invoke(ctx, "GetCart", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CartServiceClient) AddProduct(ctx context.Context, in *ProductRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	out := new(OperationResponse)
	if err := c.invoke(ctx, "AddProduct", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CartServiceClient) RemoveProduct(ctx context.Context, in *ProductRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	out := new(OperationResponse)
	if err := c.invoke(ctx, "RemoveProduct", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CartServiceClient) UpdateProductAmount(ctx context.Context, in *UpdateAmountRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	out := new(OperationResponse)
	if err := c.invoke(ctx, "UpdateProductAmount", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CartServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+cartServiceName+"/"+method, in, out, opts...)
}

// UnaryLogger logs every unary call with its status code.
func UnaryLogger(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Info("grpc request",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration", time.Since(start),
		)
		return resp, err
	}
}
