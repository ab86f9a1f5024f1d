package git

// Missing is the all-zero object id. Passed as the old value of UpdateRef it
// makes git create the ref only if it does not exist yet, which is how
// snapshot refs refuse to overwrite each other.
const Missing = "0000000000000000000000000000000000000000"
