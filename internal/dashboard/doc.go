// Package dashboard computes the point-of-sale dashboard figures from product
// and order records supplied by the surrounding application.
package dashboard
