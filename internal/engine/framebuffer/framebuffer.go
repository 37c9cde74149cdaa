// Package framebuffer provides OpenGL framebuffer utilities for offscreen
// rendering, including multi-render-target framebuffers for bake passes.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Framebuffer manages an offscreen render target with one or more color
// attachments and a depth attachment.
type Framebuffer struct {
	fbo           uint32
	colorTextures []uint32
	depthRBO      uint32
	width         int32
	height        int32
}

// New creates a framebuffer with a single color attachment.
func New(width, height int32) (*Framebuffer, error) {
	return NewMRT(width, height, 1)
}

// NewMRT creates a framebuffer with colorCount color attachments, all
// RGBA8. The bake pass uses two: albedo+alpha and encoded world normal.
func NewMRT(width, height int32, colorCount int) (*Framebuffer, error) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if colorCount < 1 {
		return nil, fmt.Errorf("framebuffer needs at least one color attachment, got %d", colorCount)
	}

	fb := &Framebuffer{
		width:         width,
		height:        height,
		colorTextures: make([]uint32, colorCount),
	}

	if err := fb.create(); err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	return fb, nil
}

func (fb *Framebuffer) create() error {
	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	drawBuffers := make([]uint32, len(fb.colorTextures))
	for i := range fb.colorTextures {
		gl.GenTextures(1, &fb.colorTextures[i])
		gl.BindTexture(gl.TEXTURE_2D, fb.colorTextures[i])
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, fb.width, fb.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		attachment := uint32(gl.COLOR_ATTACHMENT0 + i)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, gl.TEXTURE_2D, fb.colorTextures[i], 0)
		drawBuffers[i] = attachment
	}
	gl.DrawBuffers(int32(len(drawBuffers)), &drawBuffers[0])

	gl.GenRenderbuffers(1, &fb.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.width, fb.height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depthRBO)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

// Bind makes this framebuffer the current render target with a full viewport.
func (fb *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.width, fb.height)
}

// Unbind restores the default framebuffer.
func (fb *Framebuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// BindWithViewport binds and sets the viewport, saving previous state.
// Returns a restore function for the previous framebuffer and viewport.
func (fb *Framebuffer) BindWithViewport() func() {
	var prevFBO int32
	var prevViewport [4]int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.GetIntegerv(gl.VIEWPORT, &prevViewport[0])

	fb.Bind()

	return func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
		gl.Viewport(prevViewport[0], prevViewport[1], prevViewport[2], prevViewport[3])
	}
}

// Clear clears color and depth buffers with the specified color.
func (fb *Framebuffer) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ColorTexture returns the texture ID of color attachment i.
func (fb *Framebuffer) ColorTexture(i int) uint32 {
	return fb.colorTextures[i]
}

// DetachColorTextures hands ownership of the color textures to the caller
// and clears them from the framebuffer, so Destroy will not delete them.
// Used by the baker, whose output textures outlive the bake framebuffer.
func (fb *Framebuffer) DetachColorTextures() []uint32 {
	out := fb.colorTextures
	fb.colorTextures = nil
	return out
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int32) {
	return fb.width, fb.height
}

// ReadPixels reads color attachment i into RGBA bytes, bottom-up as OpenGL
// stores them.
func (fb *Framebuffer) ReadPixels(i int) []byte {
	pixels := make([]byte, fb.width*fb.height*4)

	var prevFBO int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.ReadBuffer(uint32(gl.COLOR_ATTACHMENT0 + i))

	gl.ReadPixels(0, 0, fb.width, fb.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))

	return pixels
}

// Destroy releases all OpenGL resources still owned by the framebuffer.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	for i := range fb.colorTextures {
		if fb.colorTextures[i] != 0 {
			gl.DeleteTextures(1, &fb.colorTextures[i])
			fb.colorTextures[i] = 0
		}
	}
	if fb.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &fb.depthRBO)
		fb.depthRBO = 0
	}
}
