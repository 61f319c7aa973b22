// Package formats provides parsers for model file formats.
//
// Only Wavefront OBJ text is supported: positions, normals, texture
// coordinates and triangle or quad faces. Materials, groups and smoothing
// records are skipped.
package formats
