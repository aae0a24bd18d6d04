// Package descriptor loads card editor descriptors from JSON or YAML files.
//
// A document maps editor ids to their rows:
//
//	editors:
//	  thermostat-card:
//	    title: Thermostat
//	    rows:
//	      - label: Entity
//	        controls:
//	          - type: dropdown
//	            configValue: entity
//	            itemsFrom: {domain: climate}
//
// Labels are stripped of markup on load. Controls using itemsFrom receive their
// options from the host entity registry through Resolve.
package descriptor
