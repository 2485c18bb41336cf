package provider

import "sync"

// Connection is the handle through which the page reaches its Provider.
// It starts unestablished and becomes ready exactly once.
type Connection struct {
	once  sync.Once
	ready chan struct{}
	p     Provider
}

func NewConnection() *Connection {
	return &Connection{ready: make(chan struct{})}
}

// Establish makes p available to every waiter. Only the first call has effect;
// it reports whether this call was that one.
func (c *Connection) Establish(p Provider) bool {
	established := false
	c.once.Do(func() {
		c.p = p
		close(c.ready)
		established = true
	})
	return established
}

// Ready is closed once the provider has been established.
func (c *Connection) Ready() <-chan struct{} {
	return c.ready
}

func (c *Connection) IsReady() bool {
	select {
	case <-c.ready:
		return true
	default:
		return false
	}
}

// Provider returns the established provider or ErrNotReady.
func (c *Connection) Provider() (Provider, error) {
	if !c.IsReady() {
		return nil, ErrNotReady
	}
	return c.p, nil
}
