// Package titles provides title normalization and fuzzy matching for
// screenplay-to-film comparison.
//
// Screenplay titles arrive noisy: inconsistent casing, stray punctuation,
// leading articles, and trailing year annotations like "Juno (2007)".
// Normalize folds all of those away so that equal works produce equal keys,
// and Matcher layers containment and edit-distance similarity on top of the
// normalized forms. The containment rule is deliberately recall-favoring and
// is exposed as a configurable strictness policy rather than hard-coded.
package titles
