// Command gobindgen generates Go property bindings from introspection models.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"gobindgen/internal"
	"gobindgen/internal/analysis"
	"gobindgen/internal/config"
	"gobindgen/internal/generation"
	"gobindgen/internal/library"
	"gobindgen/internal/metadata"

	_ "github.com/tliron/commonlog/simple"
)

const defaultOutputPath = "./output/"

var log = commonlog.GetLogger("gobindgen")

// pathList is a flag that can be repeated or given comma separated values.
type pathList []string

func (list *pathList) String() string {
	return strings.Join(*list, ",")
}

func (list *pathList) Set(value string) error {
	for _, path := range strings.Split(value, ",") {
		if path = strings.TrimSpace(path); path != "" {
			*list = append(*list, path)
		}
	}

	return nil
}

func main() {
	var modelPaths pathList
	flag.Var(&modelPaths, "model", "The paths of the YAML introspection models to load, repeated or comma separated. The first one is generated unless the configuration names a library.")
	var configPath = flag.String("config", config.DefaultFileName, "The path to the binding configuration. Default: "+config.DefaultFileName)
	var metadataFilePath = flag.String("metadataPath", "", "The path to a metadata (.winmd) file listing methods that already exist.")
	var outputPath = flag.String("outputPath", "", "The path where all generated files will be placed. Default: target_path from the configuration or "+defaultOutputPath)
	var forceClean = flag.Bool("forceCleanOutput", false, "If given forces cleaning output directory before generation.")
	var verbose = flag.Int("verbose", 0, "Logging verbosity, from 0 (warnings) to 2 (debug).")
	flag.Usage = func() {
		fmt.Println("App that generates Go property bindings.")
		flag.PrintDefaults()
	}

	flag.Parse()

	commonlog.Configure(*verbose, nil)

	if len(modelPaths) == 0 {
		fatalf("Model path is missing!")
	}

	lib := library.New()
	namespaces := make([]string, 0, len(modelPaths))
	for _, path := range modelPaths {
		namespace, err := lib.LoadFile(path)
		if err != nil {
			fatalf("%s", err)
		}
		namespaces = append(namespaces, namespace)
	}

	cfg, err := loadConfig(*configPath, namespaces[0])
	if err != nil {
		fatalf("%s", err)
	}

	env := analysis.NewEnv(lib, cfg, cfg.Options.Library)

	if *metadataFilePath != "" {
		reader, err := metadata.NewReader(*metadataFilePath)
		if err != nil {
			fatalf("%s", err)
		}
		addMetadataSignatures(env, reader)
	}

	output := resolveOutputPath(*outputPath, cfg)
	err = os.Mkdir(output, os.ModePerm)
	if err != nil && !errors.Is(err, fs.ErrExist) {
		panic(err)
	}

	err = ClearDirectoryIfNotEmpty(output, *forceClean)
	internal.PanicOnError(err)

	generator := generation.NewGenerator(cfg.Options.PackageName, output)
	trampolines := analysis.NewTrampolines()

	for _, tid := range selectObjects(env) {
		result, err := analysis.AnalyzeObject(env, tid, trampolines)
		if err != nil {
			log.Warningf("%s", err)
			continue
		}
		log.Infof("analyzed %s: %d accessors, %d notify signals, %d diagnostics",
			env.Type(tid).FullName(), len(result.Properties), len(result.NotifySignals), len(result.Diagnostics))
		generator.RegisterType(env, tid, result)
	}
	generator.RegisterTrampolines(env, trampolines.All())

	if err := generator.Generate(output); err != nil {
		fatalf("%s", err)
	}
}

func fatalf(format string, args ...any) {
	log.Criticalf(format, args...)
	os.Exit(1)
}

// loadConfig reads the configuration file. A missing default file falls back
// to the default configuration of the first loaded namespace.
func loadConfig(path string, namespace string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && path == config.DefaultFileName {
		return config.Default(namespace), nil
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if cfg.Options.Library == "" {
		cfg.Options.Library = namespace
	}

	return cfg, nil
}

func resolveOutputPath(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.Options.TargetPath != "" {
		return cfg.Options.TargetPath
	}

	return defaultOutputPath
}

// selectObjects returns the configured objects of the generated namespace, or
// every class and interface of it when none is configured.
func selectObjects(env *analysis.Env) []library.TypeID {
	ids := make([]library.TypeID, 0)

	if len(env.Config.Objects) > 0 {
		for _, object := range env.Config.Objects {
			namespace, name, found := strings.Cut(object.Name, ".")
			if !found || namespace != env.Namespace {
				log.Warningf("object `%s` is not part of `%s`", object.Name, env.Namespace)
				continue
			}
			tid, found := env.Library.FindType(namespace, name)
			if !found {
				log.Warningf("object `%s` not found in the model", object.Name)
				continue
			}
			ids = append(ids, tid)
		}
		return ids
	}

	for _, tid := range env.Library.Namespace(env.Namespace) {
		if env.Type(tid).IsObject() {
			ids = append(ids, tid)
		}
	}

	return ids
}

// methodSource lists the methods of a type by name.
type methodSource interface {
	MethodNames(typeName string) ([]string, bool)
}

func addMetadataSignatures(env *analysis.Env, source methodSource) {
	for _, tid := range env.Library.Namespace(env.Namespace) {
		t := env.Type(tid)
		if !t.IsObject() {
			continue
		}
		if names, found := source.MethodNames(t.Name); found {
			log.Debugf("%d methods of %s found in metadata", len(names), t.FullName())
			env.Signatures.AddNames(tid, names)
		}
	}
}

func ClearDirectoryIfNotEmpty(path string, silent bool) error {
	directory, err := os.Open(path)
	if err != nil {
		return err
	}
	defer directory.Close()

	_, err = directory.Readdirnames(1)
	if err == io.EOF {
		return nil
	}

	if err != nil {
		return err
	}

	var response string
	if !silent {
		fmt.Print("Output directory is not empty. Continuation will result in removing all output file. Proceed? [Y/n]")
		fmt.Scan(&response)
		if strings.ToUpper(response) != "Y" {
			fatalf("Explicit agreement was not given. Exiting.")
		}
	}

	log.Info("Cleaning output directory.")
	return os.RemoveAll(path)
}
