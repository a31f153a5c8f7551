package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator returns the process-wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, translatorErr
}

// Shader is a translated fragment shader.
type Shader struct {
	Code     string
	uniforms map[string]string
}

// Uniform returns the name a source uniform has in the translated code.
func (s *Shader) Uniform(name string) string {
	if mapped, ok := s.uniforms[name]; ok {
		return mapped
	}
	return name
}

// TranslateFragment translates WebGL2 fragment source for the current profile.
func TranslateFragment(source string, isGLES bool) (*Shader, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}
	outputFormat := gst.OutputFormatGLSL410
	if isGLES {
		outputFormat = gst.OutputFormatESSL
	}
	fs, err := t.TranslateShader(source, "fragment", gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}
	s := &Shader{
		Code:     fs.Code,
		uniforms: make(map[string]string, len(fs.Variables)),
	}
	for name, v := range fs.Variables {
		s.uniforms[name] = v.MappedName
	}
	return s, nil
}
