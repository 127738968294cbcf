package handler

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/rl1809/cart-manager/internal/core/domain"
)

func newGRPCClient(t *testing.T) *CartServiceClient {
	t.Helper()

	m, _ := newManager(t)
	lis := bufconn.Listen(1 << 20)

	srv := grpc.NewServer(grpc.UnaryInterceptor(UnaryLogger(discardLogger)))
	RegisterCartServiceServer(srv, NewGRPCHandler(m))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewCartServiceClient(conn)
}

func TestGRPC_AddAndGetCart(t *testing.T) {
	client := newGRPCClient(t)
	ctx := context.Background()

	resp, err := client.AddProduct(ctx, &ProductRequest{ProductID: 2})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "cart updated", resp.Message)

	cart, err := client.GetCart(ctx, &GetCartRequest{})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].ID)
	assert.Equal(t, int32(1), cart.Count)
	assert.Equal(t, "99.90", cart.Total)
}

func TestGRPC_FailuresAreResponses(t *testing.T) {
	client := newGRPCClient(t)
	ctx := context.Background()

	resp, err := client.RemoveProduct(ctx, &ProductRequest{ProductID: 1})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, string(domain.ReasonNotFound), resp.Reason)
	assert.Equal(t, domain.MessageRemoveFailed, resp.Message)

	_, err = client.AddProduct(ctx, &ProductRequest{ProductID: 1})
	require.NoError(t, err)

	resp, err = client.UpdateProductAmount(ctx, &UpdateAmountRequest{ProductID: 1, Amount: 3})
	require.NoError(t, err)
	assert.Equal(t, string(domain.ReasonStockExceeded), resp.Reason)
	assert.Equal(t, 1, resp.Cart.Items[0].Amount)

	resp, err = client.UpdateProductAmount(ctx, &UpdateAmountRequest{ProductID: 1, Amount: 2})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Cart.Items[0].Amount)
}

func TestGRPC_InvalidArgument(t *testing.T) {
	client := newGRPCClient(t)

	_, err := client.AddProduct(context.Background(), &ProductRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
