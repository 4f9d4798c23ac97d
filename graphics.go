package fna

// GraphicsDeviceManager is the optional external collaborator that owns the
// rendering device. It is located through the service registry under
// ServiceGraphicsDeviceManager; when absent, BeginDraw trivially succeeds
// and EndDraw is a no-op.
type GraphicsDeviceManager interface {
	// CreateDevice creates the underlying graphics device. Called once,
	// during Game.Initialize.
	CreateDevice() error

	// BeginDraw prepares the device for a frame. Returning false means the
	// frame's draw should be skipped, without error.
	BeginDraw() bool

	// EndDraw presents the frame.
	EndDraw()
}

// Disposer is an optional interface for services that hold resources the
// owning Game must release exactly once at disposal.
type Disposer interface {
	Dispose()
}

// HeadlessGraphicsDeviceManager is a device manager with no real device
// behind it. It satisfies the full collaborator contract and counts calls,
// which makes it suitable for headless hosts and tests.
type HeadlessGraphicsDeviceManager struct {
	// BeginDrawResult is returned from BeginDraw. Defaults to true.
	BeginDrawResult bool

	deviceCreated bool
	disposed      bool
	frames        int
}

// NewHeadlessGraphicsDeviceManager creates a manager whose BeginDraw
// succeeds.
func NewHeadlessGraphicsDeviceManager() *HeadlessGraphicsDeviceManager {
	return &HeadlessGraphicsDeviceManager{BeginDrawResult: true}
}

// CreateDevice marks the device as created.
func (m *HeadlessGraphicsDeviceManager) CreateDevice() error {
	m.deviceCreated = true
	return nil
}

// BeginDraw reports BeginDrawResult.
func (m *HeadlessGraphicsDeviceManager) BeginDraw() bool {
	return m.BeginDrawResult
}

// EndDraw counts the presented frame.
func (m *HeadlessGraphicsDeviceManager) EndDraw() {
	m.frames++
}

// Dispose releases the (pretend) device.
func (m *HeadlessGraphicsDeviceManager) Dispose() {
	m.disposed = true
}

// DeviceCreated reports whether CreateDevice has run.
func (m *HeadlessGraphicsDeviceManager) DeviceCreated() bool {
	return m.deviceCreated
}

// Disposed reports whether Dispose has run.
func (m *HeadlessGraphicsDeviceManager) Disposed() bool {
	return m.disposed
}

// FramesPresented returns the number of EndDraw calls.
func (m *HeadlessGraphicsDeviceManager) FramesPresented() int {
	return m.frames
}
