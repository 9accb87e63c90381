// Package bg3 holds the content entities read from Baldur's Gate 3 mod
// packages: feats, module identities and their packed versions, localized
// strings and the candidate list categories selectors draw from.
package bg3
