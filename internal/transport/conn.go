package transport

import (
	"fmt"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/kirbo/go-sensorsim/internal/sensorpb"
)

// Conn is the simulator's single long-lived channel to the sensor service.
// Close releases it once no matter how many exit paths call it.
type Conn struct {
	cc *grpc.ClientConn

	once     sync.Once
	closeErr error
}

// Dial prepares an insecure channel to endpoint. The connection itself is
// established lazily by the first call, so Dial does not fail when the
// service is down.
func Dial(endpoint string, opts ...grpc.DialOption) (*Conn, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	cc, err := grpc.NewClient(endpoint, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", endpoint, err)
	}

	return &Conn{cc: cc}, nil
}

func (c *Conn) Client() sensorpb.SensorServiceClient {
	return sensorpb.NewSensorServiceClient(c.cc)
}

func (c *Conn) Target() string {
	return c.cc.Target()
}

func (c *Conn) Close() error {
	c.once.Do(func() {
		c.closeErr = c.cc.Close()
	})
	return c.closeErr
}
