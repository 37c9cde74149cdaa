package forest

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tibogot/greenwood/internal/config"
	"github.com/tibogot/greenwood/internal/engine/camera"
	"github.com/tibogot/greenwood/internal/engine/impostor"
	"github.com/tibogot/greenwood/internal/engine/lighting"
	"github.com/tibogot/greenwood/internal/engine/lod"
	"github.com/tibogot/greenwood/internal/engine/mesh"
	"github.com/tibogot/greenwood/internal/logger"
	"github.com/tibogot/greenwood/pkg/math"
)

// Forest owns a baked atlas, the scattered instance table, the per-frame
// LOD manager, and one renderer per tier. Build once with New, then call
// Update and Draw every frame. All methods must run on the GL thread.
type Forest struct {
	manager    *lod.Manager
	atlas      *impostor.Atlas
	billboards *impostor.BillboardRenderer
	meshes     *MeshRenderer
	sun        lighting.Sun
}

// New bakes the source into an atlas, scatters the instance table, and
// prepares all renderers. A bake failure is fatal for the whole forest:
// there is no partial fallback.
func New(cfg config.ForestConfig, sun lighting.Sun, source *mesh.Node, height HeightFunc) (*Forest, error) {
	atlasCfg := impostor.DefaultAtlasConfig()
	atlasCfg.TextureSize = cfg.AtlasSize
	atlasCfg.SpritesPerSide = cfg.SpritesPerSide
	atlasCfg.Hemisphere = cfg.Hemisphere
	atlasCfg.CameraMargin = cfg.CameraMargin
	atlasCfg.AlphaTest = cfg.BakeAlphaTest

	baker, err := impostor.NewBaker(atlasCfg)
	if err != nil {
		return nil, fmt.Errorf("creating baker: %w", err)
	}
	defer baker.Destroy()

	atlas, err := baker.Bake(source)
	if err != nil {
		return nil, fmt.Errorf("baking atlas: %w", err)
	}

	if cfg.AtlasDumpDir != "" {
		albedo := filepath.Join(cfg.AtlasDumpDir, "atlas_albedo.png")
		normal := filepath.Join(cfg.AtlasDumpDir, "atlas_normal.png")
		if err := impostor.DumpAtlas(atlas, albedo, normal); err != nil {
			logger.Warn("atlas dump failed", zap.Error(err))
		} else {
			logger.Info("atlas dumped", zap.String("dir", cfg.AtlasDumpDir))
		}
	}

	instances := Scatter(ScatterParams{
		Count:    cfg.InstanceCount,
		AreaSize: cfg.AreaSize,
		Seed:     cfg.Seed,
		MinScale: cfg.MinScale,
		MaxScale: cfg.MaxScale,
	}, atlas.Sphere, height)

	params := lod.DefaultParams()
	params.MidDistance = cfg.MidDistance
	params.FarDistance = cfg.FarDistance
	params.FadeRange = cfg.FadeRange
	params.AlphaClamp = cfg.AlphaClamp

	billboards, err := impostor.NewBillboardRenderer(atlas)
	if err != nil {
		atlas.Dispose()
		return nil, fmt.Errorf("creating billboard renderer: %w", err)
	}

	meshes, err := NewMeshRenderer(source)
	if err != nil {
		billboards.Destroy()
		atlas.Dispose()
		return nil, fmt.Errorf("creating mesh renderer: %w", err)
	}

	logger.Info("forest built",
		zap.Int("instances", len(instances)),
		zap.Float32("area", cfg.AreaSize),
		zap.Int64("seed", cfg.Seed))

	return &Forest{
		manager:    lod.NewManager(instances, params),
		atlas:      atlas,
		billboards: billboards,
		meshes:     meshes,
		sun:        sun,
	}, nil
}

// Update reclassifies all instances for this frame. Must complete before
// Draw reads the tier buffers.
func (f *Forest) Update(camPos math.Vec3, frustum *camera.Frustum) {
	f.manager.Update(camPos, frustum)
}

// Draw renders all three tiers using the latest Update results. The
// caller fills camera state; lighting, alpha clamp, and dither phase are
// owned here so the fragment shaders always agree with the classification
// that produced the buffers.
func (f *Forest) Draw(frame impostor.FrameUniforms) {
	frame.SunDirection = f.sun.Direction
	frame.SunColor = f.sun.Color
	frame.AmbientColor = f.sun.Ambient
	frame.AlphaClamp = f.manager.Params().AlphaClamp
	frame.DitherPhase = f.manager.DitherPhase()

	f.meshes.Draw(f.manager.Tier(lod.TierNear), frame)
	f.billboards.Draw(f.manager.Tier(lod.TierMid), frame, false)
	f.billboards.Draw(f.manager.Tier(lod.TierFar), frame, true)
}

// Manager exposes the LOD manager for runtime parameter tweaks.
func (f *Forest) Manager() *lod.Manager {
	return f.manager
}

// Params returns the current LOD parameters.
func (f *Forest) Params() lod.Params {
	return f.manager.Params()
}

// SetLODDistances updates the tier switch distances.
func (f *Forest) SetLODDistances(mid, far float32) {
	f.manager.SetDistances(mid, far)
}

// SetFadeRange updates the crossfade band half-width.
func (f *Forest) SetFadeRange(r float32) {
	f.manager.SetFadeRange(r)
}

// SetAlphaClamp updates the impostor alpha cutout threshold.
func (f *Forest) SetAlphaClamp(a float32) {
	f.manager.SetAlphaClamp(a)
}

// SetTierVisible toggles one tier without re-baking or re-placing.
func (f *Forest) SetTierVisible(t lod.Tier, visible bool) {
	f.manager.SetTierVisible(t, visible)
}

// SetSunLight updates the sun direction and color.
func (f *Forest) SetSunLight(dir math.Vec3, color [3]float32) {
	f.sun.Direction = dir.NormalizeOr(math.Vec3{Y: 1}, 1e-8)
	f.sun.Color = color
}

// SetAmbient updates the ambient light color.
func (f *Forest) SetAmbient(color [3]float32) {
	f.sun.Ambient = color
}

// Sun returns the current lighting state.
func (f *Forest) Sun() lighting.Sun {
	return f.sun
}

// Atlas returns the baked atlas.
func (f *Forest) Atlas() *impostor.Atlas {
	return f.atlas
}

// TierCounts returns the per-tier visible counts from the last Update.
func (f *Forest) TierCounts() [lod.TierCount]int {
	return f.manager.Counts()
}

// Dispose releases every GPU resource the forest owns.
func (f *Forest) Dispose() {
	if f.meshes != nil {
		f.meshes.Destroy()
		f.meshes = nil
	}
	if f.billboards != nil {
		f.billboards.Destroy()
		f.billboards = nil
	}
	if f.atlas != nil {
		f.atlas.Dispose()
		f.atlas = nil
	}
}
