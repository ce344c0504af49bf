package inject

var FilterBridges = filterBridges
