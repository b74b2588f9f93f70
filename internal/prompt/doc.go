// Package prompt reads the user's choices from the console.
//
// A Console wraps one line-oriented reader and one writer. The Prompter asks
// for a priority level until a valid one is entered or the user cancels, and
// a Gate paces record display by blocking until the user acknowledges.
package prompt
