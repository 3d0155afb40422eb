/*
Package markup renders XML-like style tags into terminal text.

	<Package>vim</Package> linked into <Path>~/.vimrc</Path>

Each tag name is looked up in a StyleMap and its content rendered with the
matching lipgloss style. Unknown tags keep their content unstyled. When the
renderer has no colour support every tag is dropped and only the text
remains.

The <no-format> tag only renders when colour is off:

	<Success>linked</Success><no-format> [ok]</no-format>

Input that is not well formed is returned unchanged.
*/
package markup
