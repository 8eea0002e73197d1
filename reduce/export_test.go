// SPDX-License-Identifier: MIT
package reduce

// PanicRankInvalid_TestOnly exposes the Member panic message.
const PanicRankInvalid_TestOnly = panicRankInvalid
