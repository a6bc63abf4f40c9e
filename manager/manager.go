// Package manager implements the advertisement discovery engine. The
// manager owns a Scanner backend, remembers the latest advertisement per
// address, fans detections out to registered callbacks, matches integration
// declarations behind an LRU gate so repeat advertisements stay cheap,
// creates discovery flows for matched domains, and reports devices that
// stop advertising.
package manager

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/rigado/bluetooth"
	"github.com/rigado/bluetooth/cache"
)

// observation is the latest device/advertisement pair seen for one address.
type observation struct {
	dev *bluetooth.Device
	adv *bluetooth.Advertisement
}

// Manager orchestrates discovery on top of one Scanner. All exported
// methods are safe for concurrent use; callbacks are always invoked outside
// the manager lock, so they may re-enter the manager freely.
type Manager struct {
	scanner bluetooth.Scanner
	flows   bluetooth.FlowCreator
	logger  bluetooth.Logger

	integrationMatchers []bluetooth.IntegrationMatcher
	matched             bluetooth.MatchCache
	matchCacheSize      int
	trackInterval       time.Duration

	mu           sync.Mutex
	history      map[string]*observation
	callbacks    []*callbackEntry
	unavailable  map[string][]*unavailableEntry
	started      bool
	cancelDetect func()
	trackerStop  chan struct{}
}

// New builds a manager around scanner. The integration matchers are compiled
// up front so a broken declaration fails construction instead of silently
// never matching. flows may be nil for subscription-only deployments.
func New(scanner bluetooth.Scanner, flows bluetooth.FlowCreator, integrationMatchers []bluetooth.IntegrationMatcher, opts ...bluetooth.Option) (*Manager, error) {
	if scanner == nil {
		return nil, errors.New("discovery manager requires a scanner")
	}

	m := &Manager{
		scanner:        scanner,
		flows:          flows,
		logger:         bluetooth.GetLogger().ChildLogger(map[string]interface{}{"component": "discovery"}),
		matchCacheSize: bluetooth.DefaultMatchCacheSize,
		trackInterval:  UnavailableTrackInterval,
		history:        make(map[string]*observation),
		unavailable:    make(map[string][]*unavailableEntry),
	}

	mm := make([]bluetooth.IntegrationMatcher, len(integrationMatchers))
	copy(mm, integrationMatchers)
	for i := range mm {
		// Own the prefix bytes too, so caller mutations can't change matching.
		mm[i].ManufacturerDataStart = append([]byte(nil), mm[i].ManufacturerDataStart...)
		if err := mm[i].Compile(); err != nil {
			return nil, errors.Wrapf(err, "integration matcher %d", i)
		}
	}
	m.integrationMatchers = mm

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, errors.Wrap(err, "can't set options")
		}
	}

	if m.matched == nil {
		c, err := cache.New(m.matchCacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "can't build match cache")
		}
		m.matched = c
	}

	return m, nil
}

// Start configures the scanner and begins listening. A Setup failure is
// permanent; a Start failure is marked retryable and leaves the manager
// ready for another Start. Starting a running manager is an error.
func (m *Manager) Start(ctx context.Context, mode bluetooth.ScanningMode) error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return errors.New("discovery manager already started")
	}
	m.started = true
	m.mu.Unlock()

	if err := m.scanner.Setup(mode); err != nil {
		m.abortStart()
		return errors.Wrap(err, "failed to initialize scanner")
	}

	cancel := m.scanner.RegisterDetectionCallback(m.handleAdvertisement)

	if err := m.scanner.Start(ctx); err != nil {
		cancel()
		m.abortStart()
		return bluetooth.NotReady(errors.Wrap(err, "failed to start scanner"))
	}

	stop := make(chan struct{})
	m.mu.Lock()
	m.cancelDetect = cancel
	m.trackerStop = stop
	m.mu.Unlock()

	go m.trackLoop(stop)

	m.logger.Infof("started scanning in %s mode", mode)
	return nil
}

func (m *Manager) abortStart() {
	m.mu.Lock()
	m.started = false
	m.mu.Unlock()
}

// Stop cancels detection delivery, stops availability tracking and releases
// the scanner. Stopping a manager that never started is a no-op.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = false
	cancel := m.cancelDetect
	stop := m.trackerStop
	m.cancelDetect = nil
	m.trackerStop = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if stop != nil {
		close(stop)
	}

	if err := m.scanner.Stop(ctx); err != nil {
		return errors.Wrap(err, "failed to stop scanner")
	}

	m.logger.Info("stopped scanning")
	return nil
}

// handleAdvertisement is the single intake path for detections. The scanner
// contract delivers one detection at a time, which gives per-address
// ordering for free.
func (m *Manager) handleAdvertisement(dev *bluetooth.Device, adv *bluetooth.Advertisement) {
	address := dev.Address

	m.mu.Lock()
	m.history[address] = &observation{dev: dev, adv: adv}

	domains := m.matchIntegrationsLocked(dev, adv)

	entries := make([]*callbackEntry, len(m.callbacks))
	copy(entries, m.callbacks)
	m.mu.Unlock()

	m.logger.Debugf("device detected: %s %q matched domains: %v", address, dev.Name, domains)

	if len(domains) == 0 && len(entries) == 0 {
		return
	}

	// One ServiceInfo per detection, built only if someone consumes it.
	var info *bluetooth.ServiceInfo
	ensure := func() *bluetooth.ServiceInfo {
		if info == nil {
			info = bluetooth.NewServiceInfo(dev, adv, bluetooth.SourceLocal)
		}
		return info
	}

	for _, e := range entries {
		if e.matcher.Matches(dev, adv) {
			m.invokeCallback(e, ensure())
		}
	}

	if len(domains) == 0 {
		return
	}

	si := ensure()
	for _, domain := range domains {
		m.flows.CreateFlow(domain, bluetooth.FlowContext{Source: bluetooth.DiscoverySource}, si)
	}
}

// matchIntegrationsLocked runs the integration matchers behind the cache
// gate. A hit under (address, true) or under the advertisement's current
// shape suppresses re-evaluation; only a successful match records the
// current shape, so a device that later gains manufacturer data gets one
// more evaluation in its richer form.
func (m *Manager) matchIntegrationsLocked(dev *bluetooth.Device, adv *bluetooth.Advertisement) []string {
	if m.flows == nil || len(m.integrationMatchers) == 0 {
		return nil
	}

	key := bluetooth.MatchKey{Address: dev.Address, HasManufacturerData: len(adv.ManufacturerData) > 0}
	keyWithMfr := bluetooth.MatchKey{Address: dev.Address, HasManufacturerData: true}
	if m.matched.Contains(keyWithMfr) || m.matched.Contains(key) {
		return nil
	}

	var domains []string
	seen := make(map[string]struct{})
	for i := range m.integrationMatchers {
		im := &m.integrationMatchers[i]
		if _, ok := seen[im.Domain]; ok {
			continue
		}
		if im.Matches(dev, adv) {
			seen[im.Domain] = struct{}{}
			domains = append(domains, im.Domain)
		}
	}

	if len(domains) > 0 {
		m.matched.Add(key)
	}
	return domains
}

// DiscoveredServiceInfo projects every remembered advertisement.
func (m *Manager) DiscoveredServiceInfo() []*bluetooth.ServiceInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*bluetooth.ServiceInfo, 0, len(m.history))
	for _, o := range m.history {
		out = append(out, bluetooth.NewServiceInfo(o.dev, o.adv, bluetooth.SourceLocal))
	}
	return out
}

// DeviceFromAddress returns the remembered device for address, or nil.
func (m *Manager) DeviceFromAddress(address string) *bluetooth.Device {
	address = bluetooth.NewAddr(address).String()

	m.mu.Lock()
	defer m.mu.Unlock()

	if o, ok := m.history[address]; ok {
		return o.dev
	}
	return nil
}

// AddressPresent reports whether address has been seen and not yet pruned.
func (m *Manager) AddressPresent(address string) bool {
	address = bluetooth.NewAddr(address).String()

	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.history[address]
	return ok
}
