// Package steam is the library provider client. It reads the public app catalog, the
// owned games and wishlist of one account, and per-game store details.
//
// Every failure to reach the provider wraps models.ErrTransport, and every payload that
// cannot be read wraps models.ErrDecode.
package steam
