// Package deps provides readiness checks for the external encoder and the
// filesystem paths the captioner writes to.
//
// The checks run in two contexts:
//   - The CLI "captioner deps" command prints every check as a table so an
//     operator can see what a burn would use before starting one.
//   - The burn command resolves the encoder binary up front and refuses to
//     start a doomed render.
package deps
