// Command swrdemo renders a rotating textured cube with the swr software
// rasterizer and writes one PNG per frame.
//
// Usage:
//
//	swrdemo [-scene scene.yaml] [-frames n] [-out frame%03d.png] [-tiled] [-v]
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/schollz/progressbar/v3"

	"github.com/flubbe/swr-sub001"
	"github.com/flubbe/swr-sub001/texture"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "swrdemo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		scenePath = flag.String("scene", "", "YAML scene file")
		frames    = flag.Int("frames", 0, "number of frames (overrides the scene)")
		output    = flag.String("out", "", "output file pattern, e.g. out/frame%03d.png (overrides the scene)")
		tiled     = flag.Bool("tiled", false, "use the tiled rasterizer")
		profile   = flag.Bool("profile", false, "measure pipeline time")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	if *verbose {
		swr.SetLogger(logger)
	}

	scene, err := loadScene(*scenePath)
	if err != nil {
		return err
	}
	if *frames > 0 {
		scene.Frames = *frames
	}
	if *output != "" {
		scene.Output = *output
	}
	if *tiled {
		scene.Mode = "tiled"
	}

	stats, err := render(scene, *profile, true)
	if err != nil {
		return err
	}
	slog.Info("done",
		"frames", scene.Frames,
		"fragments", stats.Fragment.Count,
		"written", stats.Fragment.Written,
		"depth_discards", stats.Fragment.DiscardDepth,
		"culled", stats.Rasterizer.Culled,
		"raster_time", stats.Rasterizer.Cycles)
	return nil
}

// render draws every frame of scene and writes the PNG files. It returns
// the accumulated pipeline counters.
func render(scene Scene, profile, progress bool) (swr.Stats, error) {
	mode, err := scene.mode()
	if err != nil {
		return swr.Stats{}, err
	}
	filter, err := scene.filter()
	if err != nil {
		return swr.Stats{}, err
	}

	ctx, err := swr.NewContext(scene.Width, scene.Height,
		swr.WithRasterizerMode(mode),
		swr.WithWorkers(scene.Workers),
		swr.WithProfiling(profile))
	if err != nil {
		return swr.Stats{}, err
	}
	defer ctx.Close()

	tex, err := texture.New(1, checkerImage(scene.TexSize, scene.Checker))
	if err != nil {
		return swr.Stats{}, fmt.Errorf("create texture: %w", err)
	}
	tex.GenerateMipmaps()
	sampler := texture.NewSampler2D(tex)
	sampler.MagFilter = filter
	sampler.MinFilter = filter

	if _, err := ctx.BindProgram(cubeProgram{}); err != nil {
		return swr.Stats{}, err
	}
	if err := ctx.BindSampler(0, sampler); err != nil {
		return swr.Stats{}, err
	}
	m := cubeMesh()
	for slot, data := range [][]mgl32.Vec4{m.positions, m.uvs, m.normals} {
		if err := ctx.BindAttribute(slot, data); err != nil {
			return swr.Stats{}, err
		}
	}
	if err := ctx.SetUniform(uniformLight, mgl32.Vec3(scene.Light)); err != nil {
		return swr.Stats{}, err
	}

	ctx.SetTexturing(true)
	ctx.SetDepthTest(true)
	ctx.SetCulling(true)
	ctx.SetCullMode(gputypes.CullModeBack)
	ctx.SetClearColor(mgl32.Vec4(scene.Clear))

	aspect := float32(scene.Width) / float32(scene.Height)
	proj := mgl32.Perspective(mgl32.DegToRad(50), aspect, 0.5, 20)
	view := mgl32.LookAtV(mgl32.Vec3{3, 2.2, 4}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})

	var bar *progressbar.ProgressBar
	if progress {
		bar = progressbar.Default(int64(scene.Frames), "rendering")
		defer bar.Close()
	}

	for frame := range scene.Frames {
		angle := mgl32.DegToRad(scene.Rotation * float32(frame))
		model := mgl32.HomogRotate3DY(angle).Mul4(mgl32.HomogRotate3DX(angle * 0.5))
		if err := ctx.SetUniform(uniformModel, model); err != nil {
			return swr.Stats{}, err
		}
		if err := ctx.SetUniform(uniformMVP, proj.Mul4(view).Mul4(model)); err != nil {
			return swr.Stats{}, err
		}

		ctx.ClearColorBuffer()
		ctx.ClearDepthBuffer()
		if err := ctx.DrawElements(gputypes.PrimitiveTopologyTriangleList, m.indices); err != nil {
			return swr.Stats{}, fmt.Errorf("frame %d: %w", frame, err)
		}
		ctx.Flush()

		if err := writePNG(fmt.Sprintf(scene.Output, frame), ctx.ColorBuffer()); err != nil {
			return swr.Stats{}, err
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return ctx.Stats(), nil
}

func writePNG(path string, cb *swr.ColorBuffer) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, cb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
