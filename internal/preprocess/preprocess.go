// Package preprocess strips comments and splices #import directives out of
// raw cbuf schema source text (§4.1), ahead of grammar parsing. It is the
// library's only text-substitution stage and performs no disk access: the
// caller (the cmd/cbufc front end, in this repository) supplies the mapping
// from import path to already-read file contents.
package preprocess

import "regexp"

var (
	lineCommentPattern  = regexp.MustCompile(`//[^\n]*`)
	blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
	importPattern       = regexp.MustCompile(`(?m)^[ \t]*#import[ \t]+"([^"]*)"[ \t]*`)
)

// StripComments removes line comments (// to end of line) and block comments
// (/* ... */, non-greedy, possibly spanning lines).
func StripComments(text string) string {
	text = blockCommentPattern.ReplaceAllString(text, "")
	text = lineCommentPattern.ReplaceAllString(text, "")
	return text
}

// Run strips comments and recursively resolves #import "path" directives by
// substituting path's contents from imports. Each path is expanded at most
// once: a "seen" set makes the second and later occurrence of an already
// expanded path collapse to empty text, which prevents duplication on
// diamond imports and breaks cycles rather than recursing forever. A path
// absent from imports fails with ImportNotFound.
func Run(text string, imports map[string]string) (string, error) {
	seen := make(map[string]bool)
	return expand(StripComments(text), imports, seen)
}

func expand(text string, imports map[string]string, seen map[string]bool) (string, error) {
	var firstErr error
	expanded := importPattern.ReplaceAllStringFunc(text, func(directive string) string {
		if firstErr != nil {
			return ""
		}
		match := importPattern.FindStringSubmatch(directive)
		path := match[1]
		if seen[path] {
			return ""
		}
		seen[path] = true
		contents, ok := imports[path]
		if !ok {
			firstErr = ImportNotFoundError{Path: path}
			return ""
		}
		resolved, err := expand(StripComments(contents), imports, seen)
		if err != nil {
			firstErr = err
			return ""
		}
		return resolved
	})
	if firstErr != nil {
		return "", firstErr
	}
	return expanded, nil
}
