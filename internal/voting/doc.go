// Package voting resolves contested author identities by polling embedded
// book metadata: every author string found across the candidate files is
// canonicalized and tallied, and the plurality identity wins subject to the
// caller's decision policy.
package voting
