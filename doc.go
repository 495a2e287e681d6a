// Package resume renders YAML resume content into a LaTeX document and
// compiles it to PDF with an external engine.
//
// # Quick Start
//
//	data, err := resume.LoadData("data", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	gen, err := resume.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := gen.Generate(ctx, resume.Input{Data: data})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.PDFPath)
//
// # Pipeline
//
//  1. Section loading: one YAML file per section (personal.yaml,
//     experience.yaml, ...) or a single YAML mapping, ordered by a
//     section list.
//  2. Inline markup: every string is converted with ConvertMarkup, so
//     *bold*, **bold**, _italic_ and `code` become LaTeX commands and the
//     remaining special characters are escaped.
//  3. Templating: text/template with \VAR{ and } delimiters, so templates
//     stay readable as LaTeX. Sections are top-level keys (\VAR{.personal.email})
//     and build metadata lives under .meta.
//  4. Compilation: <name>.tex is written to the output directory and the
//     engine (tectonic by default) runs there. The document class and fonts
//     of a custom asset directory are linked in for the duration of the run.
//
// # Configuration
//
//	gen, err := resume.NewGenerator(
//	    resume.WithEngine("tectonic"),
//	    resume.WithTimeout(3*time.Minute),
//	    resume.WithAssetPath("assets"),
//	)
//
// Use Input.TexOnly to stop after writing the .tex file.
package resume
