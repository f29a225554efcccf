// Package sweetshop wires the storefront REST clients to the shop state
// store. Consumers construct a Store here, drive it from their event loop,
// and read snapshots for rendering.
package sweetshop

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/sita7411/sweetshop-go/internal/config"
	"github.com/sita7411/sweetshop-go/internal/port"
	"github.com/sita7411/sweetshop-go/internal/rest"
	"github.com/sita7411/sweetshop-go/internal/store"
)

// Store is the shop state store; see the store package for the operation
// contracts.
type Store = store.Store

// Notifier receives user-visible outcomes of mutations.
type Notifier = port.Notifier

type options struct {
	baseURL  string
	notifier port.Notifier
	log      *logrus.Logger
	hc       *http.Client
}

type Option func(*options)

// WithBaseURL overrides the configured API host.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

func WithNotifier(n Notifier) Option {
	return func(o *options) { o.notifier = n }
}

func WithLogger(log *logrus.Logger) Option {
	return func(o *options) { o.log = log }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.hc = hc }
}

// New builds a Store backed by the REST storefront API, configured from the
// environment (SWEETSHOP_API_URL, SWEETSHOP_HTTP_TIMEOUT) unless overridden.
func New(opts ...Option) (*Store, error) {
	cfg := config.Load()

	o := options{baseURL: cfg.BaseURL}
	for _, opt := range opts {
		opt(&o)
	}

	clientOpts := []rest.Option{rest.WithTimeout(cfg.Timeout)}
	if o.log != nil {
		clientOpts = append(clientOpts, rest.WithLogger(o.log))
	}
	if o.hc != nil {
		clientOpts = append(clientOpts, rest.WithHTTPClient(o.hc))
	}

	client, err := rest.NewClient(o.baseURL, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("rest.NewClient: %w", err)
	}

	var storeOpts []store.Option
	if o.notifier != nil {
		storeOpts = append(storeOpts, store.WithNotifier(o.notifier))
	}
	if o.log != nil {
		storeOpts = append(storeOpts, store.WithLogger(o.log))
	}

	s, err := store.New(rest.NewCart(client), rest.NewWishlist(client), storeOpts...)
	if err != nil {
		return nil, fmt.Errorf("store.New: %w", err)
	}

	return s, nil
}
