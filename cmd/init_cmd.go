package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/gamedevtech/tao/config"
)

var (
	initName   string
	initOutput string
	initForce  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a starter descriptor file and glbind.toml",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initName, "name", "n", "gl", "Descriptor file stem")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", ".", "Output directory")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
	rootCmd.AddCommand(initCmd)
}

const starterDescriptors = `# Parsed OpenGL descriptors. Function names carry a trailing underscore;
# the native entry point is the name without it.
functions:
  - name: glFlush_
    return: void
    version: "1.0"

  - name: glBindTexture_
    return: void
    version: "1.1"
    parameters:
      - { name: target, type: GLenum }
      - { name: texture, type: GLuint }

  - name: glGetString_
    return: IntPtr
    version: "1.0"
    wrapper: returns_string
    parameters:
      - { name: name, type: GLenum }

  - name: glBindBufferARB_
    return: void
    extension: true
    parameters:
      - { name: target, type: GLenum }
      - { name: buffer, type: GLuint }

constants:
  - { name: GL_FALSE, value: "0" }
  - { name: GL_TRUE, value: "1" }
  - { name: GL_TEXTURE_2D, value: "0x0DE1" }
`

const starterConfig = `# glbindgen settings. GLBIND_* environment variables and command-line
# flags override these.
output_path = "./generated"
output_namespace = "Tao.OpenGl"
output_class = "Gl"
native_library = "opengl32"
proc_address = "Tao.OpenGl.GlExtensionLoader.GetProcAddress"
`

func runInit(cmd *cobra.Command, args []string) error {
	if !quiet {
		fmt.Printf("Initializing %s in %s\n", initName, initOutput)
	}

	if err := os.MkdirAll(initOutput, 0755); err != nil {
		return errors.Wrapf(err, "creating %s", initOutput)
	}

	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(initOutput, initName+".yaml"), starterDescriptors},
		{filepath.Join(initOutput, config.DefaultConfigFile), starterConfig},
	}

	for _, f := range files {
		if err := writeStarterFile(f.path, f.content, initForce); err != nil {
			return err
		}
		if !quiet {
			fmt.Printf("  Created %s\n", f.path)
		}
	}

	if !quiet {
		fmt.Printf("\nNext steps:\n")
		fmt.Printf("  1. Add descriptors to %s\n", files[0].path)
		fmt.Printf("  2. Run: glbindgen generate %s\n", files[0].path)
	}
	return nil
}

func writeStarterFile(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.WithHint(errors.Newf("%s already exists", path), "pass --force to overwrite")
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
