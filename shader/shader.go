package shader

// ────────────────────────────────── Desktop GL ──────────────────────────────────

// The display quad is scaled to the fitted frame rectangle.
const displayVertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec3 in_position;
uniform float u_relWidth;
uniform float u_relHeight;
void main() {
    gl_Position = vec4(in_position.x * u_relWidth, in_position.y * u_relHeight, in_position.z, 1.0);
}
`

const fullscreenVertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec3 in_position;
void main() {
    gl_Position = vec4(in_position, 1.0);
}
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const displayVertexShaderSourceGLES = `#version 300 es
layout (location = 0) in vec3 in_position;
uniform float u_relWidth;
uniform float u_relHeight;
void main() {
    gl_Position = vec4(in_position.x * u_relWidth, in_position.y * u_relHeight, in_position.z, 1.0);
}
`

const fullscreenVertexShaderSourceGLES = `#version 300 es
layout (location = 0) in vec3 in_position;
void main() {
    gl_Position = vec4(in_position, 1.0);
}
`

// ───────────────────────── WebGL2 sources (translated) ─────────────────────────

// Algorithm numbers must match stereo.Algorithm. Texture row 0 is the top of
// the image. Half-width and half-height layouts sample like their full
// counterparts; only their aspect ratio differs.
const displayFragmentShaderSource = `#version 300 es
precision highp float;
precision highp int;

uniform sampler2D view0;
uniform sampler2D view1;
uniform int  algorithm;
uniform mat3 leftMatrix;
uniform mat3 rightMatrix;
uniform vec4 frameRect; // fitted image: x, y, width, height in window pixels

out vec4 fragColor;

vec3 view0At(vec2 uv) { return texture(view0, uv).rgb; }
vec3 view1At(vec2 uv) { return texture(view1, uv).rgb; }

void main()
{
    vec2 pos = gl_FragCoord.xy - frameRect.xy;
    vec2 uv = pos / frameRect.zw;
    uv.y = 1.0 - uv.y;
    vec2 pixel = floor(vec2(pos.x, frameRect.w - pos.y));

    vec3 color;
    if (algorithm == 0) {
        color = view0At(uv);
    } else if (algorithm == 1) {
        color = view1At(uv);
    } else if (algorithm == 2) {
        color = clamp(leftMatrix * view0At(uv) + rightMatrix * view1At(uv), 0.0, 1.0);
    } else if (algorithm == 3 || algorithm == 4) {
        if (uv.x < 0.5) {
            color = view0At(vec2(uv.x * 2.0, uv.y));
        } else {
            color = view1At(vec2(uv.x * 2.0 - 1.0, uv.y));
        }
    } else if (algorithm == 5 || algorithm == 6) {
        if (uv.y < 0.5) {
            color = view0At(vec2(uv.x, uv.y * 2.0));
        } else {
            color = view1At(vec2(uv.x, uv.y * 2.0 - 1.0));
        }
    } else if (algorithm == 7) {
        color = mod(pixel.y, 2.0) < 0.5 ? view0At(uv) : view1At(uv);
    } else if (algorithm == 8) {
        color = mod(pixel.x, 2.0) < 0.5 ? view0At(uv) : view1At(uv);
    } else {
        color = mod(pixel.x + pixel.y, 2.0) < 0.5 ? view0At(uv) : view1At(uv);
    }
    fragColor = vec4(color, 1.0);
}
`

// Samples an equirectangular image along the view ray of each target pixel.
const reprojectFragmentShaderSource = `#version 300 es
precision highp float;

uniform sampler2D equirect;
uniform mat4 inverseViewProjection;
uniform vec2 targetSize;
uniform vec4 crop; // the view inside the source: x, y, width, height in texture coordinates

out vec4 fragColor;

const float PI = 3.14159265358979;

void main()
{
    vec2 ndc = gl_FragCoord.xy / targetSize * 2.0 - 1.0;
    ndc.y = -ndc.y;
    vec4 p = inverseViewProjection * vec4(ndc, 1.0, 1.0);
    vec3 dir = normalize(p.xyz / p.w);
    float lon = atan(dir.x, -dir.z);
    float lat = asin(clamp(dir.y, -1.0, 1.0));
    vec2 uv = vec2(lon / (2.0 * PI) + 0.5, 0.5 - lat / PI);
    fragColor = texture(equirect, crop.xy + uv * crop.zw);
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

func DisplayVertexShader(isGLES bool) string {
	if isGLES {
		return displayVertexShaderSourceGLES
	}
	return displayVertexShaderSourceGL
}

func FullscreenVertexShader(isGLES bool) string {
	if isGLES {
		return fullscreenVertexShaderSourceGLES
	}
	return fullscreenVertexShaderSourceGL
}

// DisplayFragmentShader returns the WebGL2 source of the compositing shader.
func DisplayFragmentShader() string {
	return displayFragmentShaderSource
}

// ReprojectFragmentShader returns the WebGL2 source of the panoramic
// reprojection shader.
func ReprojectFragmentShader() string {
	return reprojectFragmentShaderSource
}
