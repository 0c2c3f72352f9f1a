// Package assets provides the stylesheets and the HTML document template
// used to render fitted documents.
//
// Assets are addressed by bare name: style "compact" is styles/compact.css
// and template "document" is templates/document.html. The built-in set is
// embedded in the binary. A custom directory with the same layout may
// override single files; an AssetResolver serves anything it lacks from the
// embedded set.
//
// Names may not contain separators or dots, and custom directories are read
// through an os.Root, so no lookup can leave the directory.
package assets
