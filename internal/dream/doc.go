// Package dream defines the contract every renderer implements and the
// registry that owns the live instances.
//
// A dream is constructed once per process and shared by reference through a
// Handle. Handles enforce the locking discipline: any number of concurrent
// Render calls, or one exclusive Prepare, Configure or Store.
package dream
