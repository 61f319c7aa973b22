package renderer

// Vertex layout: 0 position, 1 normal, 2 uv.
const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 position;
layout (location = 1) in vec3 normal;
layout (location = 2) in vec2 uv;

out vec3 v_normal;
out vec2 v_uv;

uniform mat4 perspective;
uniform mat4 view;
uniform mat4 model;

void main() {
    mat4 modelview = view * model;
    v_normal = transpose(inverse(mat3(modelview))) * normal;
    v_uv = uv;
    gl_Position = perspective * modelview * vec4(position, 1.0);
}
`

// Texturing is a procedural checker over the mesh UVs; no image is loaded.
const meshFragmentShader = `
#version 410 core

in vec3 v_normal;
in vec2 v_uv;
out vec4 color;

uniform vec3 u_light;
uniform vec3 u_color;
uniform int u_textured;
uniform int u_lit;

void main() {
    vec3 base = u_color;
    if (u_textured != 0) {
        vec2 cell = floor(v_uv * 8.0);
        float check = mod(cell.x + cell.y, 2.0);
        base = mix(u_color * 0.35, vec3(1.0), check);
    }

    if (u_lit != 0) {
        float brightness = dot(normalize(v_normal), normalize(u_light));
        color = vec4(mix(base * 0.6, base, brightness), 1.0);
    } else {
        color = vec4(base, 1.0);
    }
}
`
