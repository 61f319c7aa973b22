// meshtool is a CLI utility for inspecting OBJ meshes without opening a
// window.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/pkg/formats"
	"github.com/Faultbox/meshview/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args)
	case "validate", "check":
		err = cmdValidate(args)
	case "dump":
		err = cmdDump(args)
	case "frame":
		err = cmdFrame(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - OBJ mesh utility

Usage:
  meshtool <command> [options]

Commands:
  info <file.obj>                 Show counts, bounds and center
  validate <file.obj>...          Parse files, stop at the first failure
  dump [-n N] <file.obj>          Print the parsed mesh structure
  frame [options] <file.obj>      Print the matrices of a composed frame

Examples:
  meshtool info teapot.obj
  meshtool validate models/*.obj
  meshtool dump -n 4 cube.obj
  meshtool frame -ticks 100 -mode YXZ -width 800 -height 600 cube.obj`)
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: meshtool info <file.obj>")
	}

	mesh, err := formats.LoadOBJ(args[0])
	if err != nil {
		return err
	}

	ext := mesh.Bounds.Extent()
	uvSource := "file (vt records)"
	if !mesh.HasTexCoords {
		uvSource = "planar projection"
	}

	fmt.Printf("Mesh:      %s\n", args[0])
	fmt.Printf("Vertices:  %d\n", mesh.VertexCount())
	fmt.Printf("Normals:   %d\n", mesh.NormalCount())
	fmt.Printf("Triangles: %d\n", mesh.TriangleCount())
	fmt.Printf("Indices:   %d\n", len(mesh.Indices))
	fmt.Println()
	fmt.Printf("Bounds:    min %v max %v\n", mesh.Bounds.Min, mesh.Bounds.Max)
	fmt.Printf("Extent:    %.4g x %.4g x %.4g\n", ext[0], ext[1], ext[2])
	fmt.Printf("Center:    %v\n", mesh.Center)
	fmt.Printf("UVs:       %s\n", uvSource)
	return nil
}

func cmdValidate(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: meshtool validate <file.obj>...")
	}

	for _, path := range args {
		mesh, err := formats.LoadOBJ(path)
		if err != nil {
			fmt.Printf("FAIL  %s\n", path)
			return err
		}
		fmt.Printf("ok    %s (%d vertices, %d triangles)\n", path, mesh.VertexCount(), mesh.TriangleCount())
	}
	return nil
}

func cmdDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	limit := fs.Int("n", 8, "Show at most N entries per table (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("usage: meshtool dump [-n N] <file.obj>")
	}

	mesh, err := formats.LoadOBJ(fs.Arg(0))
	if err != nil {
		return err
	}

	if *limit > 0 {
		mesh.Vertices = head(mesh.Vertices, *limit)
		mesh.Normals = head(mesh.Normals, *limit)
		mesh.Indices = head(mesh.Indices, *limit*3)
	}

	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	cfg.Fdump(os.Stdout, mesh)
	return nil
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func cmdFrame(args []string) error {
	fs := flag.NewFlagSet("frame", flag.ExitOnError)
	width := fs.Int("width", 1280, "Viewport width")
	height := fs.Int("height", 720, "Viewport height")
	ticks := fs.Int("ticks", 0, "Advance the rotation by N ticks first")
	mode := fs.String("mode", "Y", "Rotation mode (Y, X, Z, XY, ZY, ZX, YXZ)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("usage: meshtool frame [options] <file.obj>")
	}

	rotation, ok := math.ParseRotationMode(*mode)
	if !ok {
		return errors.Errorf("unknown rotation mode %q", *mode)
	}

	mesh, err := formats.LoadOBJ(fs.Arg(0))
	if err != nil {
		return err
	}

	cfg := config.Default()
	state := scene.NewState(math.V3(mesh.Center), math.V3(mesh.Bounds.Extent()), cfg.SceneOptions())
	state.RotationMode = rotation
	for i := 0; i < *ticks; i++ {
		state.Tick()
	}

	frame := scene.NewComposer(cfg.RenderConfig()).Compose(state, *width, *height)

	fmt.Printf("Mode:   %s  angle %.4f rad after %d ticks\n", state.RotationMode, state.RotationAngle, *ticks)
	fmt.Printf("Camera: %v looking %v\n", state.CameraPosition.Array(), state.CameraDirection.Array())
	printMatrix("Model", frame.Model)
	printMatrix("View", frame.View)
	printMatrix("Projection", frame.Projection)
	return nil
}

func printMatrix(name string, m math.Mat4) {
	fmt.Printf("\n%s:\n", name)
	for _, row := range m {
		fmt.Printf("  %10.4f %10.4f %10.4f %10.4f\n", row[0], row[1], row[2], row[3])
	}
}
