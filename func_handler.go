package shaper

// RunHandlerFuncs are the callbacks of a FuncRunHandler. Each receives the
// context given to NewFuncRunHandler. A nil callback is skipped, and a nil
// RunBuffer supplies an empty Buffer.
type RunHandlerFuncs struct {
	BeginLine       func(ctx any)
	RunInfo         func(ctx any, info *RunInfo)
	CommitRunInfo   func(ctx any)
	RunBuffer       func(ctx any, info *RunInfo) Buffer
	CommitRunBuffer func(ctx any, info *RunInfo)
	CommitLine      func(ctx any)
}

// FuncRunHandler forwards every RunHandler call to a callback, passing an
// opaque context through unchanged. It lets code that cannot implement an
// interface, such as the C surface, receive shaping output.
type FuncRunHandler struct {
	ctx   any
	funcs RunHandlerFuncs
}

var _ RunHandler = (*FuncRunHandler)(nil)

// NewFuncRunHandler returns a handler calling funcs with ctx.
func NewFuncRunHandler(ctx any, funcs RunHandlerFuncs) *FuncRunHandler {
	return &FuncRunHandler{ctx: ctx, funcs: funcs}
}

// Context returns the context passed to the callbacks.
func (h *FuncRunHandler) Context() any { return h.ctx }

// BeginLine implements RunHandler.
func (h *FuncRunHandler) BeginLine() {
	if h.funcs.BeginLine != nil {
		h.funcs.BeginLine(h.ctx)
	}
}

// RunInfo implements RunHandler.
func (h *FuncRunHandler) RunInfo(info *RunInfo) {
	if h.funcs.RunInfo != nil {
		h.funcs.RunInfo(h.ctx, info)
	}
}

// CommitRunInfo implements RunHandler.
func (h *FuncRunHandler) CommitRunInfo() {
	if h.funcs.CommitRunInfo != nil {
		h.funcs.CommitRunInfo(h.ctx)
	}
}

// RunBuffer implements RunHandler. Without a callback it returns an
// empty Buffer, so the run's glyphs are dropped.
func (h *FuncRunHandler) RunBuffer(info *RunInfo) Buffer {
	if h.funcs.RunBuffer != nil {
		return h.funcs.RunBuffer(h.ctx, info)
	}
	return Buffer{}
}

// CommitRunBuffer implements RunHandler.
func (h *FuncRunHandler) CommitRunBuffer(info *RunInfo) {
	if h.funcs.CommitRunBuffer != nil {
		h.funcs.CommitRunBuffer(h.ctx, info)
	}
}

// CommitLine implements RunHandler.
func (h *FuncRunHandler) CommitLine() {
	if h.funcs.CommitLine != nil {
		h.funcs.CommitLine(h.ctx)
	}
}
