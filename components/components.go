// Package components defines the value types shared by the simulation:
// effects, pellets, stats, bounds and the ECS components stored per entity.
package components
